package hostchan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"

	"github.com/aretw0/lifecycle"

	"github.com/inkpad-app/inkpad/pkg/core"
)

// Server runs inside the privileged host process and answers storage calls
// on behalf of sandboxed renderers. It fronts a core.Store, normally a
// sandbox store rooted at the real data directory.
type Server struct {
	store  core.Store
	logger *slog.Logger
}

// NewServer creates a host-side handler over the given store.
func NewServer(store core.Store, logger *slog.Logger) *Server {
	return &Server{store: store, logger: logger}
}

// Listen creates the unix socket, replacing a stale one left by a crashed
// host.
func Listen(socket string) (net.Listener, error) {
	if err := os.Remove(socket); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to remove stale socket: %w", err)
	}
	ln, err := net.Listen("unix", socket)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", socket, err)
	}
	return ln, nil
}

// Serve accepts connections until ctx is cancelled or the listener closes.
// Each connection carries exactly one request.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("accept failed: %w", err)
		}

		lifecycle.Go(ctx, func(ctx context.Context) error {
			defer conn.Close()
			s.handleConn(ctx, conn)
			return nil
		}, lifecycle.WithErrorHandler(func(err error) {
			if s.logger != nil {
				s.logger.Error("connection handler panic", "error", err)
			}
		}))
	}
}

func (s *Server) handleConn(ctx context.Context, conn net.Conn) {
	var req request
	if err := json.NewDecoder(conn).Decode(&req); err != nil {
		if err != io.EOF && s.logger != nil {
			s.logger.Warn("malformed request", "error", err)
		}
		return
	}

	resp := s.dispatch(ctx, req)
	if err := json.NewEncoder(conn).Encode(resp); err != nil {
		if s.logger != nil {
			s.logger.Warn("failed to write response", "op", req.Op, "error", err)
		}
	}
}

func (s *Server) dispatch(ctx context.Context, req request) response {
	switch req.Op {
	case OpPing:
		return response{OK: true}

	case OpSaveNote:
		if req.Note == nil {
			return fail(errors.New("save-note: missing note"))
		}
		if err := s.store.SaveNote(ctx, *req.Note); err != nil {
			return fail(err)
		}
		return response{OK: true}

	case OpDeleteNote:
		deleted, err := s.store.DeleteNote(ctx, req.ID)
		if err != nil {
			return fail(err)
		}
		return response{OK: true, Deleted: deleted}

	case OpLoadNotes:
		notes, err := s.store.LoadNotes(ctx)
		if err != nil {
			return fail(err)
		}
		return response{OK: true, Notes: notes}

	case OpSaveImage:
		ref, err := s.store.SaveImage(ctx, req.Data)
		if err != nil {
			return fail(err)
		}
		return response{OK: true, Ref: ref}

	case OpDeleteImage:
		deleted, err := s.store.DeleteImage(ctx, req.Ref)
		if err != nil {
			return fail(err)
		}
		return response{OK: true, Deleted: deleted}

	case OpGetAllImages:
		files, err := s.store.ListImages(ctx)
		if err != nil {
			return fail(err)
		}
		return response{OK: true, Files: files}

	default:
		return fail(fmt.Errorf("unknown op %q", req.Op))
	}
}

func fail(err error) response {
	resp := response{Error: err.Error()}
	if errors.Is(err, core.ErrBadReference) {
		resp.ErrKind = errKindBadReference
	}
	return resp
}
