package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/nbolat/vidshare/internal/queue"
)

// recordingSink captures published events in place of the broker.
type recordingSink struct {
	queues   []string
	payloads []any
}

func (s *recordingSink) Publish(_ context.Context, queueName string, payload any) error {
	s.queues = append(s.queues, queueName)
	s.payloads = append(s.payloads, payload)
	return nil
}

func TestNewVideoPublishesUploadEvent(t *testing.T) {
	api, mock, done := newTestAPI(t)
	defer done()
	sink := &recordingSink{}
	api.Events = sink

	token := sessionToken(t, mock, 7)
	mock.ExpectExec("INSERT INTO videos").
		WithArgs(uint64(7), "my video", "v.mp4", "a video", 60).
		WillReturnResult(sqlmock.NewResult(11, 1))

	rec := doRequest(t, api, http.MethodPost, "/api?action=newvideo",
		`{"title":"my video","filename":"v.mp4","description":"a video"}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["result"] != true || body["msg"] != "video has been uploaded" {
		t.Fatalf("unexpected envelope: %v", body)
	}

	if len(sink.queues) != 1 || sink.queues[0] != queue.VideoUploadedQueue {
		t.Fatalf("published queues = %v, want [%s]", sink.queues, queue.VideoUploadedQueue)
	}
	ev, ok := sink.payloads[0].(queue.VideoUploadedEvent)
	if !ok || ev.VideoID != 11 || ev.UserID != 7 {
		t.Fatalf("unexpected event payload: %#v", sink.payloads[0])
	}
}

func TestNewVideoTitleTooLong(t *testing.T) {
	api, mock, done := newTestAPI(t)
	defer done()

	token := sessionToken(t, mock, 7)
	long := make([]byte, 51)
	for i := range long {
		long[i] = 'x'
	}

	rec := doRequest(t, api, http.MethodPost, "/api?action=newvideo",
		`{"title":"`+string(long)+`","filename":"v.mp4","description":"d"}`, token)
	body := decodeBody(t, rec)
	if rec.Code != http.StatusOK || body["error"] != "title length is larger than 50" {
		t.Fatalf("status = %d, envelope = %v", rec.Code, body)
	}
}

func TestDeleteVideoForeignReadsAsNotFound(t *testing.T) {
	api, mock, done := newTestAPI(t)
	defer done()

	token := sessionToken(t, mock, 7)
	mock.ExpectExec("DELETE FROM videos").
		WithArgs(uint64(7), uint64(11)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	rec := doRequest(t, api, http.MethodPost, "/api?action=deletevideo",
		`{"videoid":11}`, token)
	body := decodeBody(t, rec)
	if rec.Code != http.StatusOK || body["result"] != false || body["msg"] != "video not found" {
		t.Fatalf("status = %d, envelope = %v", rec.Code, body)
	}
}

func TestSearchRequiresQuery(t *testing.T) {
	api, _, done := newTestAPI(t)
	defer done()

	rec := doRequest(t, api, http.MethodGet, "/api?action=search", "", "")
	body := decodeBody(t, rec)
	if rec.Code != http.StatusOK || body["error"] != "query is empty" {
		t.Fatalf("status = %d, envelope = %v", rec.Code, body)
	}
}
