package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apache/tsfile-website/internal/config"
	"github.com/apache/tsfile-website/internal/deploy"
	ferrors "github.com/apache/tsfile-website/internal/foundation/errors"
	"github.com/apache/tsfile-website/internal/linkverify"
)

type message struct {
	subject string
	data    []byte
}

type fakePublisher struct {
	msgs []message
	err  error
}

func (f *fakePublisher) Publish(_ context.Context, subject string, data []byte) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, message{subject: subject, data: data})
	return nil
}

func TestDeployFinishedPublishesEvent(t *testing.T) {
	pub := &fakePublisher{}
	n := New(pub, config.NotifyConfig{NATSURL: "nats://localhost:4222"})

	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	out := deploy.Outcome{
		ID:       "abc",
		Options:  deploy.Options{Repo: "https://github.com/apache/tsfile-website.git", Branch: "asf-staging"},
		Result:   deploy.Result{Commit: "0123456789abcdef", Changed: true, Files: 12},
		Attempts: 1,
		Started:  start,
		Finished: start.Add(1500 * time.Millisecond),
	}
	require.NoError(t, n.DeployFinished(context.Background(), out))
	require.Len(t, pub.msgs, 1)
	assert.Equal(t, config.DefaultDeploySubject, pub.msgs[0].subject)

	var ev DeployEvent
	require.NoError(t, json.Unmarshal(pub.msgs[0].data, &ev))
	assert.Equal(t, "abc", ev.ID)
	assert.Equal(t, "published", ev.Status)
	assert.Equal(t, "asf-staging", ev.Branch)
	assert.Equal(t, 12, ev.Files)
	assert.EqualValues(t, 1500, ev.DurationMS)
	assert.Empty(t, ev.Error)
}

func TestDeployEventForFailure(t *testing.T) {
	ev := NewDeployEvent(deploy.Outcome{ID: "x", Err: errors.New("network down"), Attempts: 3})
	assert.Equal(t, "failed", ev.Status)
	assert.Equal(t, "network down", ev.Error)
	assert.Equal(t, 3, ev.Attempts)
}

func TestBrokenLinksUseLinkSubject(t *testing.T) {
	pub := &fakePublisher{}
	n := New(pub, config.NotifyConfig{Subject: "deploys", LinkSubject: "links"})

	err := n.BrokenLinks(context.Background(), []linkverify.BrokenLinkEvent{
		{URL: "/a", Kind: linkverify.KindInternal, Error: "page not found"},
		{URL: "https://example.org/", Kind: linkverify.KindExternal, Status: 500},
	})
	require.NoError(t, err)
	require.Len(t, pub.msgs, 2)
	for _, m := range pub.msgs {
		assert.Equal(t, "links", m.subject)
	}
	assert.JSONEq(t, `{"locale":"","navbar":"","text":"","url":"/a","kind":"internal","status":0,"error":"page not found","timestamp":"0001-01-01T00:00:00Z"}`, string(pub.msgs[0].data))
}

func TestBrokenLinksJoinsFailures(t *testing.T) {
	n := New(&fakePublisher{err: errors.New("boom")}, config.NotifyConfig{})
	err := n.BrokenLinks(context.Background(), []linkverify.BrokenLinkEvent{{URL: "/a"}, {URL: "/b"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestConnectFailureIsNetworkError(t *testing.T) {
	_, err := Connect("nats://127.0.0.1:1")
	require.Error(t, err)
	assert.Equal(t, ferrors.CategoryNetwork, ferrors.GetCategory(err))
}
