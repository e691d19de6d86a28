package files

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/databricks/databricks-sdk-go"
	"github.com/databricks/databricks-sdk-go/service/files"
)

type filesDownloadAPI interface {
	Download(ctx context.Context, request files.DownloadRequest) (*files.DownloadResponse, error)
}

// DatabricksOpener reads Unity Catalog volume files and dbfs:/ paths through
// the workspace Files API.
type DatabricksOpener struct {
	files filesDownloadAPI
}

// NewDatabricksOpener resolves credentials from the named .databrickscfg
// profile, or from the environment when profile is empty.
func NewDatabricksOpener(profile string) (*DatabricksOpener, error) {
	client, err := databricks.NewWorkspaceClient(&databricks.Config{
		Profile: profile,
	})
	if err != nil {
		return nil, fmt.Errorf("databricks workspace client: %w", err)
	}
	return &DatabricksOpener{files: client.Files}, nil
}

func (o *DatabricksOpener) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	path := strings.TrimPrefix(location, "dbfs:")
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	resp, err := o.files.Download(ctx, files.DownloadRequest{FilePath: path})
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", path, err)
	}
	return resp.Contents, nil
}
