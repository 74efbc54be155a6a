package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"connectrpc.com/connect"
	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/txtar"

	"github.com/mukku-lang/mukku"
)

// CompileProcedure is the Connect RPC path of the Compile method.
const CompileProcedure = "/mukku.v1.CompilerService/Compile"

// MaxRequestBytes caps the size of a request body.
const MaxRequestBytes = 1 << 20

const (
	formatSingle = "single"
	formatTxtar  = "txtar"
)

// CompilerServiceHandler implements the Connect RPC CompilerService
type CompilerServiceHandler struct {
	// MaxParallel bounds the number of files of one txtar request that are
	// compiled at the same time.
	MaxParallel int

	// Timeout bounds a whole request.
	Timeout time.Duration

	Logger *log.Logger
}

// NewCompilerServiceHandler creates a new CompilerServiceHandler
func NewCompilerServiceHandler() *CompilerServiceHandler {
	return &CompilerServiceHandler{
		MaxParallel: 4,
		Timeout:     10 * time.Second,
		Logger:      log.Default(),
	}
}

// NewHandler returns the path and http.Handler serving h.
func NewHandler(h *CompilerServiceHandler) (string, http.Handler) {
	return CompileProcedure, connect.NewUnaryHandler(
		CompileProcedure,
		h.Compile,
		connect.WithCodec(&JSONCodec{}),
		connect.WithReadMaxBytes(MaxRequestBytes),
	)
}

// Compile handles the Compile RPC method
func (h *CompilerServiceHandler) Compile(
	ctx context.Context,
	req *connect.Request[CompileRequest],
) (*connect.Response[CompileResponse], error) {
	if strings.TrimSpace(req.Msg.Code) == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("empty code submitted"))
	}

	format := req.Msg.Format
	if format == "" {
		format = formatSingle
	}

	var files []txtar.File
	switch format {
	case formatSingle:
		files = []txtar.File{{Name: "input.mukku", Data: []byte(req.Msg.Code)}}
	case formatTxtar:
		files = txtar.Parse([]byte(req.Msg.Code)).Files
		if len(files) == 0 {
			return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("no files found in txtar archive"))
		}
	default:
		return nil, connect.NewError(connect.CodeUnimplemented, fmt.Errorf("unsupported format %q", format))
	}

	if h.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.Timeout)
		defer cancel()
	}

	results, err := h.compileFiles(ctx, files)
	if err != nil {
		h.Logger.Printf("compile: %v", err)
		return nil, err
	}
	return connect.NewResponse(&CompileResponse{Results: results}), nil
}

// compileFiles compiles each file independently, at most MaxParallel at a
// time. Results keep the order of files.
func (h *CompilerServiceHandler) compileFiles(ctx context.Context, files []txtar.File) ([]*FileResult, error) {
	results := make([]*FileResult, len(files))

	g, ctx := errgroup.WithContext(ctx)
	if h.MaxParallel > 0 {
		g.SetLimit(h.MaxParallel)
	}
	for i, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return contextError(err)
			}
			result, err := compileFile(file.Name, string(file.Data))
			if err != nil {
				return connect.NewError(connect.CodeInternal, fmt.Errorf("%s: %w", file.Name, err))
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func contextError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return connect.NewError(connect.CodeDeadlineExceeded, err)
	}
	return connect.NewError(connect.CodeCanceled, err)
}

func compileFile(name, src string) (*FileResult, error) {
	c := mukku.Compile(src)
	output, err := mukku.Report(c)
	if err != nil {
		return nil, err
	}

	result := &FileResult{
		Name:   name,
		Output: output,
		Type:   resultSuccess,
	}
	for _, tok := range c.Tokens {
		result.Tokens = append(result.Tokens, Token{
			Kind:   tok.Kind.Category(),
			Text:   tok.Text,
			Line:   tok.Line,
			Column: tok.Column,
		})
	}
	for _, e := range c.Errors.Errors() {
		result.Errors = append(result.Errors, Diagnostic{
			Stage:   string(e.Stage),
			Message: e.Message,
			Line:    e.Pos.Line,
			Column:  e.Pos.Column,
		})
	}
	if !c.Succeeded() {
		result.Type = resultError
		return result, nil
	}

	result.Tree = mukku.ToTree(c.Program)
	result.Symbols = c.Symbols.Names()
	result.IR = c.IR
	result.Asm = c.Asm
	result.ProgramOutput = c.Output
	if c.RuntimeErr != nil {
		result.Type = resultError
		result.Errors = append(result.Errors, Diagnostic{
			Stage:   string(mukku.StageRuntime),
			Message: c.RuntimeErr.Error(),
		})
	}
	return result, nil
}

// JSONCodec implements a plain JSON codec so the service needs no protobuf
// definitions.
type JSONCodec struct{}

func (c *JSONCodec) Name() string {
	return "json"
}

func (c *JSONCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (c *JSONCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}
