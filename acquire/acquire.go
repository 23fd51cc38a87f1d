/*
Package acquire fetches the source photo for a page.

The photo is downloaded into a staging directory under a unique name,
decoded, rotated and normalized to a square 3-channel raster. The staged
file is returned as a handle which must be released once the page has been
rendered.
*/
package acquire

import (
	"context"
	"crypto/sha1"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// AcquisitionError is returned when the source photo could not be fetched
// or staged.
type AcquisitionError struct {
	URL string
	Err error
}

func (e *AcquisitionError) Error() string {
	return fmt.Sprintf("acquire: fetching %q: %v", e.URL, e.Err)
}

func (e *AcquisitionError) Unwrap() error { return e.Err }

// DecodeError is returned when the staged bytes are not a valid image.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("acquire: decoding %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// CleanupError is returned when a staged file could not be removed.
type CleanupError struct {
	Path string
	Err  error
}

func (e *CleanupError) Error() string {
	return fmt.Sprintf("acquire: removing %s: %v", e.Path, e.Err)
}

func (e *CleanupError) Unwrap() error { return e.Err }

var errNoURL = errors.New("no image url")

type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.code)
}

func (e *statusError) retryable() bool {
	return e.code >= http.StatusInternalServerError || e.code == http.StatusTooManyRequests
}

// RetryPolicy bounds how often a download is attempted.
type RetryPolicy struct {
	MaxAttempts  int
	InitialDelay time.Duration
	Multiplier   float64
}

// DefaultRetryPolicy makes three attempts, waiting half a second and then a
// second between them.
var DefaultRetryPolicy = RetryPolicy{
	MaxAttempts:  3,
	InitialDelay: 500 * time.Millisecond,
	Multiplier:   2,
}

// DefaultTimeout bounds a single download attempt.
const DefaultTimeout = 30 * time.Second

// Acquirer stages source photos in a directory.
type Acquirer struct {
	dir    string
	client *http.Client
	policy RetryPolicy
	logger *log.Logger
}

// New returns an Acquirer staging files in dir. A nil client uses one with
// DefaultTimeout and a nil logger discards output.
func New(dir string, client *http.Client, policy RetryPolicy, logger *log.Logger) *Acquirer {
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	if logger == nil {
		logger = log.New(ioutil.Discard, "", 0)
	}
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = 1
	}
	if policy.Multiplier < 1 {
		policy.Multiplier = 1
	}
	return &Acquirer{
		dir:    dir,
		client: client,
		policy: policy,
		logger: logger,
	}
}

// Staged is a source photo held in the staging directory.
type Staged struct {
	Path string
	// SHA1 is the hex digest of the staged bytes.
	SHA1 string

	released bool
}

// Release removes the staged file. Releasing more than once is a no-op.
func (s *Staged) Release() error {
	if s == nil || s.released {
		return nil
	}
	s.released = true
	if err := os.Remove(s.Path); err != nil && !os.IsNotExist(err) {
		return &CleanupError{s.Path, err}
	}
	return nil
}

// Stage fetches src into the staging directory. src is either an http(s)
// URL or a path on the local filesystem.
func (a *Acquirer) Stage(ctx context.Context, src string) (*Staged, error) {
	if src == "" {
		return nil, &AcquisitionError{src, errNoURL}
	}

	if err := os.MkdirAll(a.dir, 0755); err != nil {
		return nil, &AcquisitionError{src, err}
	}

	s := &Staged{
		Path: filepath.Join(a.dir, uuid.New().String()),
	}

	u, err := url.Parse(src)
	if err != nil {
		return nil, &AcquisitionError{src, err}
	}

	switch u.Scheme {
	case "http", "https":
		err = a.download(ctx, src, s)
	case "file":
		err = a.copyFile(u.Path, s)
	case "":
		err = a.copyFile(src, s)
	default:
		err = fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if err != nil {
		if rerr := s.Release(); rerr != nil {
			a.logger.Printf("Staging \"%s\": %v\n", src, rerr)
		}
		return nil, &AcquisitionError{src, err}
	}

	return s, nil
}

func (a *Acquirer) write(s *Staged, r io.Reader) error {
	f, err := os.Create(s.Path)
	if err != nil {
		return err
	}
	defer f.Close()

	h := sha1.New()
	if _, err := io.Copy(io.MultiWriter(f, h), r); err != nil {
		return err
	}
	s.SHA1 = fmt.Sprintf("%X", h.Sum(nil))

	return f.Close()
}

func (a *Acquirer) copyFile(path string, s *Staged) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return a.write(s, f)
}

func (a *Acquirer) download(ctx context.Context, src string, s *Staged) error {
	delay := a.policy.InitialDelay

	var err error
	for attempt := 1; attempt <= a.policy.MaxAttempts; attempt++ {
		if attempt > 1 {
			a.logger.Printf("Retrying \"%s\" in %s, attempt %d of %d: %v\n", src, delay, attempt, a.policy.MaxAttempts, err)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
			delay = time.Duration(float64(delay) * a.policy.Multiplier)
		}

		if err = a.fetch(ctx, src, s); err == nil {
			return nil
		}

		var se *statusError
		if errors.As(err, &se) && !se.retryable() {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}

	return err
}

func (a *Acquirer) fetch(ctx context.Context, src string, s *Staged) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, http.NoBody)
	if err != nil {
		return err
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &statusError{resp.StatusCode}
	}

	return a.write(s, resp.Body)
}
