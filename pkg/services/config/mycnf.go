package config

import (
	"context"
	"fmt"
	"net"

	"github.com/go-sql-driver/mysql"
	"gopkg.in/ini.v1"
)

// Registry exposes the connection profiles of a MySQL option file
// (~/.my.cnf style). Each section with keys is a profile.
type Registry interface {
	GetProfiles(ctx context.Context) ([]string, error)
	GetDSN(ctx context.Context, profile string) (string, error)
}

type cfgRegistry struct {
	cfg *ini.File
}

func NewRegistry(path string) (Registry, error) {
	cfg, err := ini.LoadSources(ini.LoadOptions{AllowBooleanKeys: true, Loose: false}, path)
	if err != nil {
		return nil, err
	}
	return &cfgRegistry{cfg: cfg}, nil
}

func (cr *cfgRegistry) GetProfiles(_ context.Context) ([]string, error) {
	var profiles []string
	for _, section := range cr.cfg.Sections() {
		if len(section.Keys()) > 0 {
			profiles = append(profiles, section.Name())
		}
	}
	return profiles, nil
}

// GetDSN builds a go-sql-driver DSN from host, port, socket, user, password
// and database keys of the profile section.
func (cr *cfgRegistry) GetDSN(_ context.Context, profile string) (string, error) {
	section, err := cr.cfg.GetSection(profile)
	if err != nil || len(section.Keys()) == 0 {
		return "", fmt.Errorf("profile %s not found", profile)
	}

	cfg := mysql.NewConfig()
	cfg.User = section.Key("user").String()
	cfg.Passwd = section.Key("password").String()
	cfg.DBName = section.Key("database").MustString(section.Key("db").String())
	cfg.ParseTime = true

	if socket := section.Key("socket").String(); socket != "" {
		cfg.Net = "unix"
		cfg.Addr = socket
	} else {
		host := section.Key("host").MustString("127.0.0.1")
		port := section.Key("port").MustString("3306")
		cfg.Net = "tcp"
		cfg.Addr = net.JoinHostPort(host, port)
	}

	if cfg.DBName == "" {
		return "", fmt.Errorf("profile %s: database is required", profile)
	}
	return cfg.FormatDSN(), nil
}
