package main

import (
	"context"
	"fmt"
	"github.com/go-resty/resty/v2"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"net/http"
	"net/http/cookiejar"
	"os"
	"time"
)

type LoadConfig struct {
	BaseURL  string        // Admin UI address
	UserID   string        // Account used to log in
	Password string        // Password of UserID
	Paths    []string      // Protected views requested in turn
	Users    int           // Number of virtual users
	Duration time.Duration // Test duration
}

type result struct {
	duration time.Duration
	status   int
	err      error
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cfg := LoadConfig{}
	cmd := &cobra.Command{
		Use:          "load_client",
		Short:        "Generate traced traffic against the admin UI",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoadTest(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVar(&cfg.BaseURL, "url", "http://localhost:3000", "admin UI base url")
	cmd.Flags().StringVar(&cfg.UserID, "user", "", "user id to log in with")
	cmd.Flags().StringVar(&cfg.Password, "password", "", "password of the user")
	cmd.Flags().StringSliceVar(&cfg.Paths, "paths", []string{"/products", "/store"}, "views to request")
	cmd.Flags().IntVar(&cfg.Users, "users", 5, "number of concurrent virtual users")
	cmd.Flags().DurationVar(&cfg.Duration, "duration", time.Minute, "test duration")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

// newSession logs in and returns a client carrying the session cookie.
func newSession(ctx context.Context, cfg LoadConfig) (*resty.Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetCookieJar(jar).
		SetRedirectPolicy(resty.RedirectPolicyFunc(func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}))

	resp, err := client.R().
		SetContext(ctx).
		SetFormData(map[string]string{"user_id": cfg.UserID, "password": cfg.Password}).
		Post("/login")
	if err != nil {
		return nil, fmt.Errorf("unable to log in as %s: %w", cfg.UserID, err)
	}
	if resp.StatusCode() != http.StatusSeeOther {
		return nil, fmt.Errorf("login as %s rejected with status %d", cfg.UserID, resp.StatusCode())
	}
	return client, nil
}

// worker requests the configured views in turn and records response times
func worker(ctx context.Context, cfg LoadConfig, results chan<- result) error {
	client, err := newSession(ctx, cfg)
	if err != nil {
		return err
	}
	for i := 0; ; i++ {
		select {
		case <-ctx.Done():
			return nil
		default:
			path := cfg.Paths[i%len(cfg.Paths)]
			start := time.Now()
			resp, err := client.R().SetContext(ctx).Get(path)
			if ctx.Err() != nil {
				return nil
			}
			r := result{duration: time.Since(start), err: err}
			if resp != nil {
				r.status = resp.StatusCode()
			}
			results <- r
		}
	}
}

func runLoadTest(parent context.Context, cfg LoadConfig) error {
	if len(cfg.Paths) == 0 {
		return fmt.Errorf("no paths to request")
	}
	results := make(chan result, 1000)

	ctx, cancel := context.WithTimeout(parent, cfg.Duration)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)

	fmt.Printf("Starting load test: %d users, %s\n", cfg.Users, cfg.Duration)

	for i := 0; i < cfg.Users; i++ {
		g.Go(func() error {
			return worker(gctx, cfg, results)
		})
	}

	go func() {
		_ = g.Wait()
		close(results)
	}()

	var totalRequests, failed int
	var totalTime time.Duration
	for r := range results {
		totalRequests++
		totalTime += r.duration
		if r.err != nil || r.status < 200 || r.status >= 300 {
			failed++
		}
	}

	avgTime := time.Duration(0)
	if totalRequests > 0 {
		avgTime = totalTime / time.Duration(totalRequests)
	}

	fmt.Printf("\nLoad Test Results:\n")
	fmt.Printf("Total Requests: %d\n", totalRequests)
	fmt.Printf("Failed Requests: %d\n", failed)
	fmt.Printf("Average Response Time: %s\n", avgTime)

	if err := g.Wait(); err != nil {
		return fmt.Errorf("load test encountered errors: %w", err)
	}
	fmt.Println("Load test completed.")
	return nil
}
