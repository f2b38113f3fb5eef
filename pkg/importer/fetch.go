package importer

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/pkg/errors"
)

// MaxImportBytes caps the size of a document read by Fetch.
const MaxImportBytes = 5 << 20

// Fetch reads an import document from a file path or an http(s) URL.
func Fetch(ctx context.Context, input string) (data []byte, err error) {
	parsedURL, urlErr := url.Parse(input)
	if urlErr == nil && (parsedURL.Scheme == "http" || parsedURL.Scheme == "https") {
		data, err = fetchFromURL(ctx, input)
		if err != nil {
			err = errors.Wrapf(err, "failed to fetch resume from URL: %s", input)
			return data, err
		}
		return data, err
	}

	data, err = fetchFromFile(input)
	if err != nil {
		err = errors.Wrapf(err, "failed to read resume from file: %s", input)
		return data, err
	}
	return data, err
}

func fetchFromFile(path string) (data []byte, err error) {
	var info os.FileInfo
	info, err = os.Stat(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to stat file: %s", path)
		return data, err
	}
	if info.Size() > MaxImportBytes {
		err = errors.Errorf("file is larger than %d bytes", MaxImportBytes)
		return data, err
	}

	data, err = os.ReadFile(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to read file: %s", path)
		return data, err
	}

	if len(data) == 0 {
		err = errors.New("file is empty")
		return data, err
	}
	return data, err
}

func fetchFromURL(ctx context.Context, urlStr string) (data []byte, err error) {
	var req *http.Request
	req, err = http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		err = errors.Wrap(err, "failed to create HTTP request")
		return data, err
	}

	req.Header.Set("User-Agent", "resume-builder/1.0")
	req.Header.Set("Accept", "application/json")

	client := &http.Client{
		Timeout: 30 * time.Second,
	}

	var resp *http.Response
	resp, err = client.Do(req)
	if err != nil {
		err = errors.Wrap(err, "HTTP request failed")
		return data, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err = errors.Errorf("HTTP request failed with status: %d", resp.StatusCode)
		return data, err
	}

	data, err = io.ReadAll(io.LimitReader(resp.Body, MaxImportBytes+1))
	if err != nil {
		err = errors.Wrap(err, "failed to read response body")
		return data, err
	}
	if len(data) > MaxImportBytes {
		err = errors.Errorf("response is larger than %d bytes", MaxImportBytes)
		data = nil
		return data, err
	}

	if len(data) == 0 {
		err = errors.New("fetched content is empty")
		return data, err
	}
	return data, err
}
