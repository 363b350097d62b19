package main

import (
	"context"
	"encoding/base64"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/jose-valero/fantasy-vct-bot/internal/domain"
	. "github.com/smartystreets/goconvey/convey"
)

type stubUploader struct {
	id, event string
	err       error
}

func (s *stubUploader) UploadMatch(_ context.Context, id, event string) (string, error) {
	s.id, s.event = id, event
	return "ok", s.err
}

func TestHandle(t *testing.T) {
	ctx := context.Background()

	Convey("Given the upload lambda", t, func() {
		up := &stubUploader{}
		h := &handler{secret: "s3cret", up: up}
		authed := map[string]string{"x-upload-secret": "s3cret"}

		Convey("Requests without the secret are rejected", func() {
			res, err := h.handle(ctx, events.APIGatewayV2HTTPRequest{PathParameters: map[string]string{"id": "1"}})
			So(err, ShouldBeNil)
			So(res.StatusCode, ShouldEqual, http.StatusUnauthorized)
			So(up.id, ShouldEqual, "")
		})

		Convey("The match id comes from the path", func() {
			res, _ := h.handle(ctx, events.APIGatewayV2HTTPRequest{
				Headers:               authed,
				PathParameters:        map[string]string{"id": "378662"},
				QueryStringParameters: map[string]string{"event": "Masters"},
			})
			So(res.StatusCode, ShouldEqual, http.StatusOK)
			So(up.id, ShouldEqual, "378662")
			So(up.event, ShouldEqual, "Masters")
		})

		Convey("Or from a base64 JSON body", func() {
			body := base64.StdEncoding.EncodeToString([]byte(`{"match_id":"42","event":"Champions"}`))
			res, _ := h.handle(ctx, events.APIGatewayV2HTTPRequest{Headers: authed, Body: body, IsBase64Encoded: true})
			So(res.StatusCode, ShouldEqual, http.StatusOK)
			So(up.id, ShouldEqual, "42")
			So(up.event, ShouldEqual, "Champions")
		})

		Convey("A missing id is a bad request", func() {
			res, _ := h.handle(ctx, events.APIGatewayV2HTTPRequest{Headers: authed, Body: `{}`})
			So(res.StatusCode, ShouldEqual, http.StatusBadRequest)
		})

		Convey("Duplicates are reported as conflicts", func() {
			up.err = domain.Conflict("This match has already been uploaded.")
			res, _ := h.handle(ctx, events.APIGatewayV2HTTPRequest{Headers: authed, PathParameters: map[string]string{"id": "1"}})
			So(res.StatusCode, ShouldEqual, http.StatusConflict)
			So(res.Body, ShouldContainSubstring, "already been uploaded")
		})
	})
}
