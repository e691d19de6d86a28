package files

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
)

// AzureBlobOpener reads azblob://<account>/<container>/<blob> locations.
type AzureBlobOpener struct {
	cred      azcore.TokenCredential
	newClient func(serviceURL string, cred azcore.TokenCredential) (blobDownloader, error)
}

type blobDownloader interface {
	DownloadStream(ctx context.Context, containerName, blobName string, o *azblob.DownloadStreamOptions) (azblob.DownloadStreamResponse, error)
}

func NewAzureBlobOpener() (*AzureBlobOpener, error) {
	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("azure credentials: %w", err)
	}
	return &AzureBlobOpener{
		cred: cred,
		newClient: func(serviceURL string, cred azcore.TokenCredential) (blobDownloader, error) {
			return azblob.NewClient(serviceURL, cred, nil)
		},
	}, nil
}

func (o *AzureBlobOpener) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	account, container, blob, err := splitAzureLocation(location)
	if err != nil {
		return nil, err
	}

	client, err := o.newClient(fmt.Sprintf("https://%s.blob.core.windows.net/", account), o.cred)
	if err != nil {
		return nil, fmt.Errorf("azure blob client: %w", err)
	}

	resp, err := client.DownloadStream(ctx, container, blob, nil)
	if err != nil {
		return nil, fmt.Errorf("download blob: %w", err)
	}
	return resp.Body, nil
}

func splitAzureLocation(location string) (account, container, blob string, err error) {
	u, err := url.Parse(location)
	if err != nil {
		return "", "", "", err
	}
	parts := strings.SplitN(strings.TrimPrefix(u.Path, "/"), "/", 2)
	if u.Host == "" || len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", "", fmt.Errorf("location %q must look like azblob://<account>/<container>/<blob>", location)
	}
	return u.Host, parts[0], parts[1], nil
}
