package redis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewClientRequiresURL(t *testing.T) {
	_, err := NewClient(context.Background(), Config{})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestNewClientRejectsMalformedURL(t *testing.T) {
	_, err := NewClient(context.Background(), Config{URL: "http://not-redis"})
	assert.Error(t, err)
}
