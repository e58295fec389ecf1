package app

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/multierr"

	"github.com/oshokin/curl-logger/internal/config"
	"github.com/oshokin/curl-logger/internal/logger"
	"github.com/oshokin/curl-logger/pkg/client"
	"github.com/oshokin/curl-logger/pkg/curl"
	"github.com/oshokin/curl-logger/pkg/curllog"
)

// ConfigureCurlLogging publishes the curl logging settings derived from cfg.
// cfg must be validated.
func ConfigureCurlLogging(cfg *config.Config) {
	curllog.Configure(func(c *curllog.Configuration) {
		c.SetEnvironment(cfg.ParsedEnvironment)
		c.Enabled = cfg.CurlLoggingEnabled()
		c.Sink = curllog.DefaultSink()
	})
}

// NewFormatter returns a formatter with the base URI and default proxy from cfg.
func NewFormatter(cfg *config.Config) *curl.Formatter {
	return &curl.Formatter{
		BaseURI: cfg.BaseURI,
		Proxy:   cfg.ProxySettings(),
	}
}

// ExecuteFormatCommand writes the curl command for the described request to w,
// with the same default headers the send command adds.
// The command is printed regardless of whether curl logging is enabled.
func ExecuteFormatCommand(
	_ context.Context,
	cfg *config.Config,
	w io.Writer,
	method, uri string,
	flags RequestFlags,
) (err error) {
	req, err := ParseRequest(method, uri, flags)
	if err != nil {
		return err
	}

	defer func() {
		err = multierr.Append(err, req.Close())
	}()

	command, err := NewFormatter(cfg).Format(
		req.Method,
		req.URI,
		client.ApplyDefaultHeaders(req.Options, client.DefaultHeaders(cfg.DefaultHeaders)))
	if err != nil {
		return fmt.Errorf("failed to format request: %w", err)
	}

	if _, err = fmt.Fprintln(w, command); err != nil {
		return fmt.Errorf("failed to write command: %w", err)
	}

	return nil
}

// ExecuteSendCommand sends the described request through the logging client
// and writes the response status line and body to w.
func ExecuteSendCommand(
	ctx context.Context,
	cfg *config.Config,
	w io.Writer,
	method, uri string,
	flags RequestFlags,
) (err error) {
	req, err := ParseRequest(method, uri, flags)
	if err != nil {
		return err
	}

	defer func() {
		err = multierr.Append(err, req.Close())
	}()

	httpClient := client.New(
		client.WithFormatter(NewFormatter(cfg)),
		client.WithMaxLogLength(cfg.ParsedMaxLogLength),
		client.WithDefaultHeaders(cfg.DefaultHeaders),
		client.WithTimeout(cfg.ParsedTimeout))

	resp, err := httpClient.Do(ctx, req.Method, req.URI, req.Options)
	if err != nil {
		return err
	}

	defer func() {
		err = multierr.Append(err, resp.Body.Close())
	}()

	logger.Infof(ctx, "%s %s: %s", req.Method, resp.Request.URL, resp.Status)

	if _, err = fmt.Fprintf(w, "%s %s\n", resp.Proto, resp.Status); err != nil {
		return fmt.Errorf("failed to write response status: %w", err)
	}

	if _, err = io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	return nil
}

// ExecuteConfigInitCommand writes a default configuration file to path.
func ExecuteConfigInitCommand(ctx context.Context, path string) error {
	if path == "" {
		path = config.DefaultConfigFilename
	}

	if err := config.WriteDefaultConfig(path); err != nil {
		return err
	}

	logger.Infof(ctx, "Configuration written to %s", path)

	return nil
}
