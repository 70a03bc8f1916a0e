package mux

import (
	"encoding/json"
	"errors"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"setgame-server/internal/rng"
	"setgame-server/pkg/deck"
	"setgame-server/pkg/playable"
	"setgame-server/pkg/room"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func newTestMux(t *testing.T) (*Mux, *room.Dealer, *room.Spectators) {
	t.Helper()

	opts := room.DefaultOptions()
	spectators := room.NewSpectators(opts.TableSize, logrus.StandardLogger())
	dealer, err := room.NewDealer(opts, playable.NewSetRule(deck.StandardLayout), rng.NewSeeded(1), spectators, logrus.StandardLogger())
	if err != nil {
		t.Fatal(err)
	}

	return NewMux("v1.2.3", dealer, spectators), dealer, spectators
}

func Test_remoteAddr(t *testing.T) {
	r := &http.Request{RemoteAddr: "127.0.0.1:5000"}
	assert.Equal(t, "127.0.0.1", remoteAddr(r))

	r.RemoteAddr = "[::1]:5000"
	assert.Equal(t, "[::1]", remoteAddr(r))

	r.RemoteAddr = "pipe"
	assert.Equal(t, "pipe", remoteAddr(r))
}

func Test_writeJSONError(t *testing.T) {
	a := assert.New(t)

	w := httptest.NewRecorder()
	writeJSONError(w, http.StatusBadRequest, errors.New("bad slot"))
	a.Equal(http.StatusBadRequest, w.Code)
	a.Equal("application/json", w.Header().Get("Content-Type"))
	a.JSONEq(`{"message":"bad slot","statusCode":400}`, w.Body.String())

	w = httptest.NewRecorder()
	writeJSONError(w, http.StatusInternalServerError, errors.New("secret"))
	a.JSONEq(`{"message":"Internal Server Error","statusCode":500}`, w.Body.String())
}

func Test_notFound(t *testing.T) {
	m, _, _ := newTestMux(t)
	ts := httptest.NewServer(m)
	defer ts.Close()

	var errObj errorResponse
	assertGet(t, ts, "/table", &errObj, http.StatusNotFound)
	assert.Equal(t, "Not Found", errObj.Message)
}

func assertDo(t *testing.T, req *http.Request, respObj interface{}, statusCode int) *http.Response {
	t.Helper()

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Error(err)
		return nil
	}
	defer resp.Body.Close()

	if statusCode != resp.StatusCode {
		b, _ := ioutil.ReadAll(resp.Body)
		t.Log(string(b))
		assert.Equal(t, statusCode, resp.StatusCode)
		return nil
	}

	if respObj != nil {
		if err := json.NewDecoder(resp.Body).Decode(respObj); err != nil {
			t.Error(err)
			return nil
		}
	}

	return resp
}

func assertGet(t *testing.T, ts *httptest.Server, path string, respObj interface{}, statusCode int) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, ts.URL+path, nil)
	if err != nil {
		t.Error(err)
		return nil
	}

	return assertDo(t, req, respObj, statusCode)
}
