package cpm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/opencontainers/go-digest"
)

// Client talks to a cpm server. A Client remembers the session
// returned by LoadProject and sends it on subsequent requests.
type Client struct {
	HTTPClient *http.Client
	Base       *url.URL
	Session    string
}

func (c *Client) init() error {
	if c.HTTPClient == nil {
		c.HTTPClient = http.DefaultClient
	}
	if c.Base == nil {
		var err error
		c.Base, err = url.Parse("http://localhost:5000/")
		return err
	}
	return nil
}

func (c *Client) do(ctx context.Context, method string, elems []string, header http.Header, in, out any) error {
	if err := c.init(); err != nil {
		return err
	}

	var body io.Reader
	if in != nil {
		buf := new(bytes.Buffer)
		if err := json.NewEncoder(buf).Encode(in); err != nil {
			return err
		}
		body = buf
	}

	req, err := http.NewRequestWithContext(ctx, method, c.Base.JoinPath(elems...).String(), body)
	if err != nil {
		return err
	}

	for key, values := range header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Session != "" {
		req.Header.Set(HeaderSession, c.Session)
	}

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		body := map[string]string{}
		if err = json.NewDecoder(res.Body).Decode(&body); err == nil {
			if body["error"] != "" {
				return fmt.Errorf("http status code %d: %s", res.StatusCode, body["error"])
			}
		}

		return fmt.Errorf("http status code %d", res.StatusCode)
	}

	if err = json.NewDecoder(res.Body).Decode(out); err != nil {
		return err
	}

	return nil
}

// LoadProject loads the project at projectPath on the server and
// adopts the session it was loaded into.
func (c *Client) LoadProject(ctx context.Context, projectPath string) (*ProjectDescriptorSet, error) {
	res := &LoadProjectResponse{}
	if err := c.do(ctx, http.MethodPost, []string{"/api/load-project"}, nil, &LoadProjectRequest{ProjectPath: projectPath}, res); err != nil {
		return nil, err
	}

	c.Session = res.Session

	return res.Data, nil
}

// SaveConfig writes updates into config.xml of the loaded project.
// If ifMatch is not empty, the save only proceeds if config.xml
// still has that digest.
func (c *Client) SaveConfig(ctx context.Context, updates map[string]string, ifMatch digest.Digest) error {
	header := http.Header{}
	if ifMatch != "" {
		header.Set("If-Match", strconv.Quote(ifMatch.String()))
	}

	return c.do(ctx, http.MethodPost, []string{"/api/save-config"}, header, &SaveConfigRequest{Config: updates}, &SaveConfigResponse{})
}

func (c *Client) GetProjectInfo(ctx context.Context) (*ProjectInfo, error) {
	info := &ProjectInfo{}
	if err := c.do(ctx, http.MethodGet, []string{"/api/get-project-info"}, nil, nil, info); err != nil {
		return nil, err
	}

	return info, nil
}
