package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestParseCLIArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want Options
	}{
		{
			name: "no arguments",
			args: []string{},
			want: Options{Kind: "waypoint"},
		},
		{
			name: "positional host",
			args: []string{"http://test.com"},
			want: Options{Host: "http://test.com", Kind: "waypoint"},
		},
		{
			name: "explicit flags",
			args: []string{"-host", "http://test.com", "-kind", "tag", "-chain", "c1", "-limit", "5"},
			want: Options{Host: "http://test.com", Kind: "tag", Chain: "c1", Limit: 5},
		},
		{
			name: "shorthand submit",
			args: []string{"http://test.com", "-chain", "c1", "-author", "alice", "-s", `{"name":"x"}`},
			want: Options{Host: "http://test.com", Kind: "waypoint", Chain: "c1", Author: "alice", Submit: `{"name":"x"}`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseCLIArgs(tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRunFromCLIHistory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tag/chains/c1/history", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("limit"))
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"id": "n2", "authorId": "bob", "createdAt": "2026-01-02T00:00:00Z", "value": map[string]string{"name": "new"}},
			{"id": "n1", "authorId": "alice", "createdAt": "2026-01-01T00:00:00Z", "value": map[string]string{"name": "old"}},
		})
	}))
	defer server.Close()

	var out bytes.Buffer
	err := RunFromCLI(context.Background(), zap.NewNop().Sugar(), &out, []string{server.URL, "-kind", "tag", "-chain", "c1", "-limit", "2"})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "n2")
	assert.Contains(t, out.String(), `{"name":"old"}`)
}

func TestRunFromCLISubmit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "alice", r.Header.Get("X-Author-Id"))
		var body map[string]json.RawMessage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.JSONEq(t, `{"name":"castle"}`, string(body["value"]))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"node":{"id":"n3"},"status":"pending"}`))
	}))
	defer server.Close()

	var out bytes.Buffer
	err := RunFromCLI(context.Background(), zap.NewNop().Sugar(), &out,
		[]string{server.URL, "-kind", "tag", "-chain", "c1", "-author", "alice", "-submit", `{"name":"castle"}`})
	require.NoError(t, err)
	assert.Equal(t, "Submitted revision n3 to c1\n", out.String())

	err = RunFromCLI(context.Background(), zap.NewNop().Sugar(), &out, []string{server.URL, "-chain", "c1", "-submit", `{}`})
	assert.ErrorContains(t, err, "-author")
}

func TestRunFromCLIDiff(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/waypoint/diff/a/b", r.URL.Path)
		_, _ = w.Write([]byte(`{"text":{"title":{"spans":[
			{"op":"equal","tokens":["hello"," "]},
			{"op":"inserted","tokens":["there"," "]},
			{"op":"equal","tokens":["world"]}]}},
			"lists":{"tags":{"inserted":["castle"],"deleted":[]}}}`))
	}))
	defer server.Close()

	var out bytes.Buffer
	require.NoError(t, RunFromCLI(context.Background(), zap.NewNop().Sugar(), &out, []string{server.URL, "-diff", "a:b"}))
	assert.Contains(t, out.String(), "title: hello {+there +}world")
	assert.Contains(t, out.String(), "tags: +[castle] -[]")
}

func TestRunFromCLIErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"chain with id 'c9' does not exist","error":404}`))
	}))
	defer server.Close()

	logger := zap.NewNop().Sugar()
	var out bytes.Buffer
	assert.ErrorContains(t, RunFromCLI(context.Background(), logger, &out, []string{}), "no host")
	assert.ErrorContains(t, RunFromCLI(context.Background(), logger, &out, []string{server.URL}), "no chain")
	assert.ErrorContains(t, RunFromCLI(context.Background(), logger, &out, []string{server.URL, "-diff", "ab"}), "<fromId>:<toId>")
	assert.ErrorContains(t, RunFromCLI(context.Background(), logger, &out, []string{server.URL, "-chain", "c9"}), "does not exist")
}
