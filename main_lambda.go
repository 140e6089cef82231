//go:build lambda

package main

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	jsoniter "github.com/json-iterator/go"

	"gear-optimizer/internal/builds"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var jsonHeader = map[string]string{
	"Content-Type": "application/json",
}

type optimizeRequest struct {
	Build     string   `json:"build"`
	Mode      string   `json:"mode"`
	Limit     int      `json:"limit"`
	Seed      uint64   `json:"seed"`
	Infusions int      `json:"infusions"`
	Slots     []string `json:"slots"`
	SkipFine  bool     `json:"skipFine"`
}

func handler(ctx context.Context, event events.LambdaFunctionURLRequest) (events.LambdaFunctionURLResponse, error) {
	body := event.Body
	if event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return errResp(400, "invalid base64 body")
		}
		body = string(decoded)
	}

	var req optimizeRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		return errResp(400, "invalid JSON: "+err.Error())
	}
	if req.Build == "" {
		return errResp(400, "missing build")
	}
	b, err := builds.Lookup(req.Build)
	if err != nil {
		return errResp(404, err.Error())
	}

	// Environment overrides still apply; the request wins over them.
	cfg, err := LoadRunConfig("")
	if err != nil {
		return errResp(500, err.Error())
	}
	if req.Mode != "" {
		cfg.Mode = req.Mode
	}
	if req.Limit > 0 {
		cfg.Search.Limit = req.Limit
	}
	if req.Seed != 0 {
		cfg.Search.Seed = req.Seed
	}
	if len(req.Slots) > 0 {
		cfg.Slots = req.Slots
	}
	cfg.Search.Infusions = req.Infusions
	cfg.Search.SkipFine = req.SkipFine

	log := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()}))
	r, err := cfg.Request(log)
	if err != nil {
		return errResp(400, err.Error())
	}

	out, err := runBuilds(ctx, []builds.Build{b}, r)
	if err != nil {
		return errResp(500, fmt.Sprintf("optimizing %s: %v", req.Build, err))
	}

	respJSON, _ := json.Marshal(out.Runs[0])
	return events.LambdaFunctionURLResponse{StatusCode: 200, Headers: jsonHeader, Body: string(respJSON)}, nil
}

func errResp(code int, msg string) (events.LambdaFunctionURLResponse, error) {
	body, _ := json.Marshal(map[string]string{"error": msg})
	return events.LambdaFunctionURLResponse{StatusCode: code, Headers: jsonHeader, Body: string(body)}, nil
}

func main() {
	lambda.Start(handler)
}
