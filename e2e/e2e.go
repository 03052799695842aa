// Package e2e drives a running game through its spectator api.
package e2e

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/battlesnakeio/snake/rules"
	"github.com/pkg/errors"
)

type client struct {
	apiURL string
	client *http.Client
}

func (c *client) steer(d rules.Direction) error {
	resp, err := c.client.Post(fmt.Sprintf("%s/direction/%s", c.apiURL, d), "application/json", nil)
	if err != nil {
		return err
	}
	if err := resp.Body.Close(); err != nil {
		return err
	}
	if resp.StatusCode != http.StatusAccepted {
		return errors.Errorf("steer %s: unexpected status %d", d, resp.StatusCode)
	}
	return nil
}

func (c *client) state() (*rules.Frame, error) {
	f := &rules.Frame{}
	if err := c.getJSON("/state", f); err != nil {
		return nil, err
	}
	return f, nil
}

func (c *client) frames(limit, offset int) ([]*rules.Frame, error) {
	frames := []*rules.Frame{}
	if err := c.getJSON(fmt.Sprintf("/frames?limit=%d&offset=%d", limit, offset), &frames); err != nil {
		return nil, err
	}
	return frames, nil
}

func (c *client) getJSON(path string, v interface{}) error {
	resp, err := c.client.Get(c.apiURL + path)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return errors.Errorf("get %s: unexpected status %d", path, resp.StatusCode)
	}
	err = json.NewDecoder(resp.Body).Decode(v)
	if cErr := resp.Body.Close(); err == nil {
		err = cErr
	}
	return err
}
