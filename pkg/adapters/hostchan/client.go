package hostchan

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"

	"github.com/inkpad-app/inkpad/pkg/core"
)

// Client implements core.Store by forwarding every call to the host
// process. It is stateless: one connection per call, no retries, no
// deadlines (a hung host stalls the call, not the process).
type Client struct {
	socket string
	logger *slog.Logger
}

// NewClient creates a client for the host storage socket.
func NewClient(socket string, logger *slog.Logger) *Client {
	return &Client{socket: socket, logger: logger}
}

// Initialize verifies the host channel is reachable.
func (c *Client) Initialize(ctx context.Context) error {
	_, err := c.call(ctx, request{Op: OpPing})
	if err != nil {
		return fmt.Errorf("host channel not reachable: %w", err)
	}
	return nil
}

// Close releases resources. The client keeps no open connections.
func (c *Client) Close() error { return nil }

func (c *Client) call(ctx context.Context, req request) (*response, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "unix", c.socket)
	if err != nil {
		return nil, fmt.Errorf("failed to dial host socket: %w", err)
	}
	defer conn.Close()

	if err := json.NewEncoder(conn).Encode(req); err != nil {
		return nil, fmt.Errorf("failed to send %s: %w", req.Op, err)
	}

	var resp response
	if err := json.NewDecoder(conn).Decode(&resp); err != nil {
		return nil, fmt.Errorf("failed to read %s response: %w", req.Op, err)
	}

	if !resp.OK {
		if resp.ErrKind == errKindBadReference {
			return nil, fmt.Errorf("%w: %s", core.ErrBadReference, resp.Error)
		}
		return nil, fmt.Errorf("host %s failed: %s", req.Op, resp.Error)
	}
	return &resp, nil
}

func (c *Client) SaveNote(ctx context.Context, n core.Note) error {
	_, err := c.call(ctx, request{Op: OpSaveNote, Note: &n})
	return err
}

func (c *Client) DeleteNote(ctx context.Context, id string) (bool, error) {
	resp, err := c.call(ctx, request{Op: OpDeleteNote, ID: id})
	if err != nil {
		return false, err
	}
	return resp.Deleted, nil
}

func (c *Client) LoadNotes(ctx context.Context) ([]core.Note, error) {
	resp, err := c.call(ctx, request{Op: OpLoadNotes})
	if err != nil {
		return nil, err
	}
	return resp.Notes, nil
}

func (c *Client) SaveImage(ctx context.Context, data []byte) (string, error) {
	resp, err := c.call(ctx, request{Op: OpSaveImage, Data: data})
	if err != nil {
		return "", err
	}
	return resp.Ref, nil
}

func (c *Client) DeleteImage(ctx context.Context, ref string) (bool, error) {
	resp, err := c.call(ctx, request{Op: OpDeleteImage, Ref: ref})
	if err != nil {
		return false, err
	}
	return resp.Deleted, nil
}

func (c *Client) ListImages(ctx context.Context) ([]string, error) {
	resp, err := c.call(ctx, request{Op: OpGetAllImages})
	if err != nil {
		return nil, err
	}
	if resp.Files == nil {
		return []string{}, nil
	}
	return resp.Files, nil
}

var _ core.Store = (*Client)(nil)
