package log

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestWithCorrelationID(t *testing.T) {
	incoming := uuid.New().String()

	ctx, id := WithCorrelationID(context.Background(), incoming)
	assert.Equal(t, incoming, id)
	assert.Equal(t, incoming, GetCorrelationID(ctx))

	ctx, id = WithCorrelationID(context.Background(), "not-a-uuid")
	assert.NotEqual(t, "not-a-uuid", id)
	_, err := uuid.Parse(id)
	assert.NoError(t, err)
	assert.Equal(t, id, GetCorrelationID(ctx))

	assert.Empty(t, GetCorrelationID(context.Background()))
}

func TestDevelopmentFieldFilter(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	var buf bytes.Buffer
	base := logrus.New()
	base.SetOutput(&buf)
	base.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true, DisableColors: true})

	l := &logger{entry: logrus.NewEntry(base)}
	l.WithFields(Fields{"session": "user-1", "remote_addr": "10.0.0.1", "user_id": 3}).Info("teste")

	out := buf.String()
	assert.Contains(t, out, "session=user-1")
	assert.Contains(t, out, "user_id=3")
	assert.NotContains(t, out, "remote_addr")
}

func TestProductionKeepsAllFields(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	var buf bytes.Buffer
	base := logrus.New()
	base.SetOutput(&buf)
	base.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true, DisableColors: true})

	ctx, id := WithCorrelationID(context.Background(), "")
	l := &logger{entry: logrus.NewEntry(base)}
	l.WithContext(ctx).WithField("remote_addr", "10.0.0.1").Info("teste")

	out := buf.String()
	assert.Contains(t, out, "remote_addr=10.0.0.1")
	assert.Contains(t, out, "correlation_id="+id)
}
