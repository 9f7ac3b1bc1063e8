package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// client talks to the remote API of a running control-center.
type client struct {
	addr string
	http *http.Client
}

func newClient(addr string) *client {
	return &client{addr: addr, http: &http.Client{Timeout: 2 * time.Second}}
}

func (c *client) status() ([]byte, error) {
	resp, err := c.http.Get(c.addr + "/api/status")
	if err != nil {
		return nil, errors.Wrap(err, "could not fetch status")
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return nil, errors.Errorf("status request failed: %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

func (c *client) sendMission(waypoints []string) error {
	body, err := json.Marshal(map[string][]string{"waypoints": waypoints})
	if err != nil {
		return errors.Wrap(err, "could not encode mission")
	}
	resp, err := c.http.Post(c.addr+"/api/mission", "application/json", bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "could not send mission")
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		msg, _ := io.ReadAll(resp.Body)
		return errors.Errorf("mission rejected: %s", strings.TrimSpace(string(msg)))
	}
	return nil
}

func (c *client) sendInstruction(kind string, id string) (string, error) {
	body, err := json.Marshal(map[string]string{"kind": kind, "id": id})
	if err != nil {
		return "", errors.Wrap(err, "could not encode instruction")
	}
	resp, err := c.http.Post(c.addr+"/api/instruction", "application/json", bytes.NewReader(body))
	if err != nil {
		return "", errors.Wrap(err, "could not send instruction")
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		msg, _ := io.ReadAll(resp.Body)
		return "", errors.Errorf("instruction rejected: %s", strings.TrimSpace(string(msg)))
	}
	var reply struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return "", errors.Wrap(err, "could not decode instruction response")
	}
	return reply.ID, nil
}
