// Lambda detrás de API Gateway (HTTP API v2) que sube un match de vlr.gg.
//
//	POST /matches/{id}/upload?event=...   header X-Upload-Secret
//	POST /upload  {"match_id":"123","event":"..."}
package main

import (
	"context"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/rs/zerolog/log"

	"github.com/jose-valero/fantasy-vct-bot/internal/adapters/httpapi"
	"github.com/jose-valero/fantasy-vct-bot/internal/adapters/vlr"
	"github.com/jose-valero/fantasy-vct-bot/internal/app/service"
	"github.com/jose-valero/fantasy-vct-bot/internal/domain"
	"github.com/jose-valero/fantasy-vct-bot/internal/infra/config"
	"github.com/jose-valero/fantasy-vct-bot/internal/infra/storage"
	"github.com/jose-valero/fantasy-vct-bot/pkg/logger"
)

type uploadRequest struct {
	MatchID string `json:"match_id"`
	Event   string `json:"event"`
}

type handler struct {
	secret string
	up     httpapi.Uploader
}

func readSecret(req events.APIGatewayV2HTTPRequest) string {
	// HTTP API v2 entrega los headers en minúscula.
	if v := req.Headers[strings.ToLower(httpapi.SecretHeader)]; v != "" {
		return v
	}
	return req.Headers[httpapi.SecretHeader]
}

// parseRequest toma id y evento de la ruta/query y, si faltan, del body JSON.
func parseRequest(req events.APIGatewayV2HTTPRequest) (uploadRequest, error) {
	out := uploadRequest{
		MatchID: req.PathParameters["id"],
		Event:   req.QueryStringParameters["event"],
	}
	body := req.Body
	if req.IsBase64Encoded {
		dec, err := base64.StdEncoding.DecodeString(req.Body)
		if err != nil {
			return out, domain.Validation("invalid base64 body")
		}
		body = string(dec)
	}
	if strings.TrimSpace(body) != "" {
		var b uploadRequest
		if err := json.Unmarshal([]byte(body), &b); err != nil {
			return out, domain.Validation("invalid JSON body")
		}
		if out.MatchID == "" {
			out.MatchID = b.MatchID
		}
		if out.Event == "" {
			out.Event = b.Event
		}
	}
	if out.MatchID == "" {
		return out, domain.Validation("match_id is required")
	}
	return out, nil
}

func respond(code int, v any) events.APIGatewayV2HTTPResponse {
	b, _ := json.Marshal(v)
	return events.APIGatewayV2HTTPResponse{
		StatusCode: code,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(b),
	}
}

func (h *handler) handle(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	log.Info().
		Str("path", req.RawPath).
		Str("method", req.RequestContext.HTTP.Method).
		Str("ip", req.RequestContext.HTTP.SourceIP).
		Msg("upload hit")

	got := readSecret(req)
	if h.secret == "" || subtle.ConstantTimeCompare([]byte(got), []byte(h.secret)) != 1 {
		return respond(http.StatusUnauthorized, map[string]any{"ok": false, "error": "unauthorized"}), nil
	}

	in, err := parseRequest(req)
	if err != nil {
		return respond(httpapi.StatusFor(err), map[string]any{"ok": false, "error": domain.UserMessage(err)}), nil
	}
	msg, err := h.up.UploadMatch(ctx, in.MatchID, in.Event)
	if err != nil {
		code := httpapi.StatusFor(err)
		if code == http.StatusInternalServerError {
			log.Error().Err(err).Str("match", in.MatchID).Msg("upload failed")
		}
		return respond(code, map[string]any{"ok": false, "error": domain.UserMessage(err)}), nil
	}
	return respond(http.StatusOK, map[string]any{"ok": true, "message": msg}), nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	logger.Init(cfg.LogLevel, false)

	pool, db, err := storage.OpenPool(context.Background(), cfg.DatabaseURL, 4)
	if err != nil {
		log.Fatal().Err(err).Msg("db")
	}
	defer pool.Close()

	vc := vlr.New(vlr.WithBaseURL(cfg.VLRBaseURL), vlr.WithAPIURL(cfg.VLRAPIURL))
	h := &handler{
		secret: cfg.UploadSecret,
		up:     service.NewLeague(storage.NewStore(db), vc),
	}
	lambda.Start(h.handle)
}
