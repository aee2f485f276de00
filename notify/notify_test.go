package notify_test

import (
	"bytes"
	"testing"

	"github.com/jrsteele09/starose-admin/notify"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsole(t *testing.T) {
	var out bytes.Buffer
	console := notify.NewConsole(&out, false)

	notify.Warning(console, "%s is now low on stock! Only %d left.", "Soap", 4)
	assert.Equal(t, "⚠ Soap is now low on stock! Only 4 left.\n", out.String())

	out.Reset()
	notify.NewConsole(&out, true).Notify(notify.Notification{Level: notify.LevelError, Message: "boom"})
	assert.Contains(t, out.String(), "\033[31m")
}

func TestCollectorAndLogged(t *testing.T) {
	var logs bytes.Buffer
	collector := &notify.Collector{}
	n := notify.Logged(collector, zerolog.New(&logs))

	notify.Success(n, "Item updated successfully")
	notify.Error(n, "Failed to save item.")

	got := collector.Notifications()
	require.Len(t, got, 2)
	assert.Equal(t, notify.Notification{Level: notify.LevelSuccess, Message: "Item updated successfully"}, got[0])
	assert.Equal(t, notify.LevelError, got[1].Level)
	assert.Contains(t, logs.String(), `"level":"error"`)
	assert.Contains(t, logs.String(), "Failed to save item.")
}
