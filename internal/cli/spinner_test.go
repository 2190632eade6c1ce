package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSpinner_Draws(t *testing.T) {
	var buf syncBuffer
	s := newSpinner(context.Background(), &buf, "Scanning...")
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	assert.Contains(t, buf.String(), "Scanning...")
}

func TestSpinner_ContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := newSpinner(ctx, &syncBuffer{}, "Scanning...")
	s.Start()

	cancel()
	time.Sleep(100 * time.Millisecond)

	assert.True(t, s.Cancelled())
	s.Stop()
}

func TestSpinner_StopIsIdempotent(t *testing.T) {
	s := newSpinner(context.Background(), &syncBuffer{}, "Scanning...")
	s.Start()
	s.Stop()
	s.Stop()
}

func TestSpinner_StopWithSuccess(t *testing.T) {
	var out bytes.Buffer
	s := newSpinner(context.Background(), &syncBuffer{}, "Scanning...")
	s.Start()
	s.StopWithSuccess(&out, "Done")

	assert.Contains(t, out.String(), "Done")
}

func TestStopSpinner(t *testing.T) {
	var out bytes.Buffer
	s := newSpinner(context.Background(), &syncBuffer{}, "Scanning...")
	s.Start()
	stopSpinner(s, &out, 4, nil)
	assert.Contains(t, out.String(), "Found 4 lockfiles")

	out.Reset()
	s = newSpinner(context.Background(), &syncBuffer{}, "Scanning...")
	s.Start()
	stopSpinner(s, &out, 0, errors.New("walk failed"))
	assert.Empty(t, out.String())
}
