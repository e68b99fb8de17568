package anet

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestListCloudServers(t *testing.T) {
	var gotQuery map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"list-instancesresponse": {
				"instancesSet": [
					{
						"InstanceId": 1001,
						"vm_description": "web-1",
						"vm_ip_address": "45.58.0.10",
						"vm_image": "ubuntu-22.04_64bit",
						"vm_image_display_name": "Ubuntu 22.04 LTS",
						"vm_plan_name": "G2.2GB",
						"vm_status": "RUNNING"
					}
				]
			}
		}`))
	}))
	defer srv.Close()

	c := New("pub", "priv", WithBaseURL(srv.URL))
	servers, err := c.ListCloudServers(context.Background())
	if err != nil {
		t.Fatalf("ListCloudServers failed: %v", err)
	}

	if len(servers) != 1 {
		t.Fatalf("got %d servers, want 1", len(servers))
	}
	s := servers[0]
	if s.InstanceID != "1001" {
		t.Errorf("InstanceID = %q, want %q", s.InstanceID, "1001")
	}
	if s.Name != "web-1" {
		t.Errorf("Name = %q, want %q", s.Name, "web-1")
	}
	if s.IPAddress != "45.58.0.10" {
		t.Errorf("IPAddress = %q, want %q", s.IPAddress, "45.58.0.10")
	}
	if s.Status != "RUNNING" {
		t.Errorf("Status = %q, want %q", s.Status, "RUNNING")
	}

	// Signed query contract.
	if gotQuery["Action"] != "list-instances" {
		t.Errorf("Action = %q, want %q", gotQuery["Action"], "list-instances")
	}
	if gotQuery["Format"] != "json" {
		t.Errorf("Format = %q, want %q", gotQuery["Format"], "json")
	}
	if gotQuery["ACSAccessKeyId"] != "pub" {
		t.Errorf("ACSAccessKeyId = %q, want %q", gotQuery["ACSAccessKeyId"], "pub")
	}
	for _, k := range []string{"Version", "Timestamp", "Rndguid", "Signature"} {
		if gotQuery[k] == "" {
			t.Errorf("query parameter %s missing", k)
		}
	}
	if want := sign(gotQuery["Timestamp"], gotQuery["Rndguid"], "priv"); gotQuery["Signature"] != want {
		t.Errorf("Signature = %q, want %q", gotQuery["Signature"], want)
	}
}

func TestGetCloudServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("Action"); got != "describe-instance" {
			t.Errorf("Action = %q, want describe-instance", got)
		}
		if got := r.URL.Query().Get("instanceid"); got != "1001" {
			t.Errorf("instanceid = %q, want 1001", got)
		}
		w.Write([]byte(`{
			"describe-instanceresponse": {
				"instancesSet": [{"InstanceId": "1001", "vm_status": "RUNNING"}]
			}
		}`))
	}))
	defer srv.Close()

	c := New("pub", "priv", WithBaseURL(srv.URL))
	s, err := c.GetCloudServer(context.Background(), "1001")
	if err != nil {
		t.Fatalf("GetCloudServer failed: %v", err)
	}
	if s.InstanceID != "1001" {
		t.Errorf("InstanceID = %q, want %q", s.InstanceID, "1001")
	}
}

func TestGetCloudServer_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"describe-instanceresponse": {"instancesSet": []}}`))
	}))
	defer srv.Close()

	c := New("pub", "priv", WithBaseURL(srv.URL))
	_, err := c.GetCloudServer(context.Background(), "9999")
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("expected not-found error, got %v", err)
	}
}

func TestDo_MissingCredentials(t *testing.T) {
	c := New("", "")
	_, err := c.ListCloudServers(context.Background())
	if !errors.Is(err, ErrMissingCredentials) {
		t.Errorf("expected ErrMissingCredentials, got %v", err)
	}

	c = New("pub", "")
	_, err = c.ListPlans(context.Background())
	if !errors.Is(err, ErrMissingCredentials) {
		t.Errorf("expected ErrMissingCredentials with half a key pair, got %v", err)
	}
}

func TestDo_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error": {"message": "invalid signature", "code": 401}}`))
	}))
	defer srv.Close()

	c := New("pub", "wrong", WithBaseURL(srv.URL))
	_, err := c.ListImages(context.Background())
	if err == nil || !strings.Contains(err.Error(), "invalid signature") {
		t.Errorf("expected API error surfaced, got %v", err)
	}
}

func TestDo_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New("pub", "priv", WithBaseURL(srv.URL))
	_, err := c.ListSSHKeys(context.Background())
	if err == nil || !strings.Contains(err.Error(), "status 502") {
		t.Errorf("expected status error, got %v", err)
	}
}

func TestCloudServer_RoundTrip(t *testing.T) {
	raw := `{"InstanceId":"42","vm_ip_address":"10.0.0.5","vm_vnc_password":"secret","vnc_port":5902}`

	var s CloudServer
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	// Fields not modeled as typed struct members survive a round trip.
	out, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(out, &m); err != nil {
		t.Fatalf("re-unmarshal failed: %v", err)
	}
	if m["vm_vnc_password"] != "secret" {
		t.Errorf("vm_vnc_password = %v, want %q", m["vm_vnc_password"], "secret")
	}
	if m["vnc_port"] != float64(5902) {
		t.Errorf("vnc_port = %v, want 5902", m["vnc_port"])
	}
}

func TestCloudServer_Address(t *testing.T) {
	s := CloudServer{IPAddress: "45.58.0.10", PrivateIPAddress: "10.0.0.5"}

	if got := s.Address(false); got != "45.58.0.10" {
		t.Errorf("public Address = %q, want %q", got, "45.58.0.10")
	}
	if got := s.Address(true); got != "10.0.0.5" {
		t.Errorf("private Address = %q, want %q", got, "10.0.0.5")
	}

	noPrivate := CloudServer{IPAddress: "45.58.0.10"}
	if got := noPrivate.Address(true); got != "45.58.0.10" {
		t.Errorf("Address should fall back to public, got %q", got)
	}
}
