package backendtest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginSessionAndRecording(t *testing.T) {
	s := New()
	defer s.Close()

	jar, _ := cookiejar.New(nil)
	hc := s.Client()
	hc.Jar = jar

	resp, err := hc.Post(s.BaseURL()+"/user/login", "application/json",
		strings.NewReader(`{"userAccount":"alice","userPassword":"12345678"}`))
	require.NoError(t, err)
	_ = resp.Body.Close()

	resp, err = hc.Get(s.BaseURL() + "/user/get/login")
	require.NoError(t, err)
	defer resp.Body.Close()
	var env struct {
		Code int `json:"code"`
		Data struct {
			UserAccount string `json:"userAccount"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	assert.Equal(t, 0, env.Code)
	assert.Equal(t, "alice", env.Data.UserAccount)

	reqs := s.Requests()
	require.Len(t, reqs, 2)
	assert.Equal(t, "/user/login", reqs[0].Path)
	assert.JSONEq(t, `{"userAccount":"alice","userPassword":"12345678"}`, string(reqs[0].Body))
	assert.Equal(t, http.MethodGet, s.Last().Method)
}

func TestFailNext(t *testing.T) {
	s := New()
	defer s.Close()
	s.FailNext(http.StatusServiceUnavailable)

	resp, err := s.Client().Get(s.BaseURL() + "/health/")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	resp, err = s.Client().Get(s.BaseURL() + "/health/")
	require.NoError(t, err)
	b, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.JSONEq(t, `{"code":0,"data":"ok","message":"ok"}`, string(b))
}

func TestNotLoggedInIsBusinessError(t *testing.T) {
	s := New()
	defer s.Close()

	resp, err := s.Client().Get(s.BaseURL() + "/app/list/page/vo?pageNum=1")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var env struct {
		Code int `json:"code"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	assert.Equal(t, CodeNotLogin, env.Code)
}
