package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/muesli/termenv"

	"github.com/weldworks/weldr/pkg/device"
)

// SendOptions contains the configuration for the send command.
type SendOptions struct {
	FilePath  string
	Host      string
	APIKey    string
	Username  string
	Password  string
	Autostart bool
	Timeout   time.Duration
}

// Send uploads a generated instruction stream to the device.
func Send(opts SendOptions) error {
	client := newClient(opts.Host, opts.APIKey, opts.Username, opts.Password, opts.Timeout)

	ctx, cancel := context.WithTimeout(context.Background(), opts.Timeout)
	defer cancel()

	info, err := client.Version(ctx)
	if err != nil {
		return fmt.Errorf("device check failed: %w", err)
	}
	fmt.Printf("Connected to %s (%s)\n", info.Hostname, info.Text)

	f, err := os.Open(opts.FilePath)
	if err != nil {
		return fmt.Errorf("failed to open instruction stream: %w", err)
	}
	defer f.Close()

	name := filepath.Base(opts.FilePath)
	if err := client.Upload(ctx, name, f, opts.Autostart); err != nil {
		return err
	}

	p := termenv.ColorProfile()
	fmt.Println(termenv.String("Uploaded " + name).Foreground(p.Color("#04b575")))
	if opts.Autostart {
		fmt.Println("Job started.")
	}
	return nil
}

// StatusOptions contains the configuration for the status command.
type StatusOptions struct {
	Host     string
	APIKey   string
	Username string
	Password string
	Timeout  time.Duration
}

// Status performs a one-shot probe of the device and its current job.
func Status(opts StatusOptions) error {
	client := newClient(opts.Host, opts.APIKey, opts.Username, opts.Password, opts.Timeout)

	ctx, cancel := context.WithTimeout(context.Background(), opts.Timeout)
	defer cancel()

	info, err := client.Version(ctx)
	if err != nil {
		return fmt.Errorf("device unreachable: %w", err)
	}
	fmt.Printf("Device:  %s\n", info.Hostname)
	fmt.Printf("Server:  %s (API %s)\n", info.Server, info.API)

	job, err := client.Job(ctx)
	if err != nil {
		fmt.Println("Job:     none")
		return nil
	}

	p := termenv.ColorProfile()
	state := termenv.String(job.State)
	switch job.State {
	case "PRINTING", "RUNNING":
		state = state.Foreground(p.Color("#04b575"))
	case "PAUSED":
		state = state.Foreground(p.Color("#ffd700"))
	case "ERROR":
		state = state.Foreground(p.Color("#ff0000"))
	}
	fmt.Printf("Job:     %s (%s, %.1f%%)\n", job.File.Name, state, job.Progress)
	return nil
}

func newClient(host, apiKey, username, password string, timeout time.Duration) *device.Client {
	var opts []device.Option
	if apiKey != "" {
		opts = append(opts, device.WithAPIKey(apiKey))
	} else if username != "" {
		opts = append(opts, device.WithDigestAuth(username, password))
	}
	if timeout > 0 {
		opts = append(opts, device.WithTimeout(timeout))
	}
	return device.New(host, opts...)
}
