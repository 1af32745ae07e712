package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/njchilds90/gopoly/internal/config"
	"github.com/njchilds90/gopoly/internal/session"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := config.Default().Server
	cfg.MaxLines = 8
	srv := httptest.NewServer(newMux(cfg, session.NewStore(time.Minute, 2)))
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestTool_Add(t *testing.T) {
	srv := newTestServer(t)
	resp := postJSON(t, srv.URL+"/tool", `{"tool":"add","params":{"p":"(1,0)+(1,2)","q":"2"}}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}
	var out struct {
		String string `json:"string"`
		Error  string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out.Error != "" || out.String != "(3,0)+(1,2)" {
		t.Errorf("want (3,0)+(1,2), got %q (error %q)", out.String, out.Error)
	}
}

func TestTool_PowCappedByConfig(t *testing.T) {
	srv := newTestServer(t)
	resp := postJSON(t, srv.URL+"/tool", `{"tool":"pow","params":{"p":"(1,0)+(1,1)","n":2147483647}}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}
	var out struct {
		String string `json:"string"`
		Error  string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.Error, "param n") || out.String != "" {
		t.Errorf("want an n range error, got %q (string %q)", out.Error, out.String)
	}
}

func TestTool_RejectsTrailingData(t *testing.T) {
	srv := newTestServer(t)
	resp := postJSON(t, srv.URL+"/tool", `{"tool":"deg","params":{"p":"1"}} {}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("want 400, got %d", resp.StatusCode)
	}
}

func TestTool_MethodNotAllowed(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/tool")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("want 405, got %d", resp.StatusCode)
	}
}

func TestSchema(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/schema")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var m map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		t.Errorf("schema should be valid JSON: %v", err)
	}
	if _, ok := m["tools"]; !ok {
		t.Error("schema should list tools")
	}
}

func TestSessions_Lifecycle(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/sessions", "")
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("want 201, got %d", resp.StatusCode)
	}
	var created struct{ ID string }
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatal(err)
	}

	resp = postJSON(t, srv.URL+"/sessions/"+created.ID+"/exec",
		`{"lines":["(1,0)+(1,2)","(2,0)","ADD","PRINT","SUB"]}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}
	var res session.Result
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		t.Fatal(err)
	}
	if len(res.Output) != 1 || res.Output[0] != "(3,0)+(1,2)" {
		t.Errorf("want output [(3,0)+(1,2)], got %v", res.Output)
	}
	if len(res.Errors) != 1 || res.Errors[0] != "ERROR 5 STACK UNDERFLOW" {
		t.Errorf("want [ERROR 5 STACK UNDERFLOW], got %v", res.Errors)
	}

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/sessions/"+created.ID, nil)
	del, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	del.Body.Close()
	if del.StatusCode != http.StatusNoContent {
		t.Errorf("want 204, got %d", del.StatusCode)
	}

	resp = postJSON(t, srv.URL+"/sessions/"+created.ID+"/exec", `{"lines":["ZERO"]}`)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("want 404 after delete, got %d", resp.StatusCode)
	}
}

func TestSessions_TooManyLines(t *testing.T) {
	srv := newTestServer(t)
	resp := postJSON(t, srv.URL+"/sessions", "")
	var created struct{ ID string }
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatal(err)
	}
	lines, _ := json.Marshal(map[string][]string{"lines": make([]string, 9)})
	resp = postJSON(t, srv.URL+"/sessions/"+created.ID+"/exec", string(lines))
	if resp.StatusCode != http.StatusRequestEntityTooLarge {
		t.Errorf("want 413, got %d", resp.StatusCode)
	}
}

func TestSessions_Limit(t *testing.T) {
	srv := newTestServer(t)
	postJSON(t, srv.URL+"/sessions", "")
	postJSON(t, srv.URL+"/sessions", "")
	resp := postJSON(t, srv.URL+"/sessions", "")
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("want 503, got %d", resp.StatusCode)
	}
}
