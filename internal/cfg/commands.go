package cfg

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"vidgrab/internal/app"
	cfgflags "vidgrab/internal/cfg/flags"
	"vidgrab/internal/command/builder"
	"vidgrab/internal/command/execute"
	"vidgrab/internal/domain/consts"
	"vidgrab/internal/domain/keys"
	"vidgrab/internal/domain/logger"
	"vidgrab/internal/server"
	"vidgrab/internal/session"
	"vidgrab/internal/utils/print"
	"vidgrab/internal/validation"

	"github.com/spf13/cobra"
)

// newService validates settings and builds the core service over yt-dlp.
func newService() (*Settings, *app.Service, error) {
	s, err := LoadSettings()
	if err != nil {
		return nil, nil, err
	}
	if err := s.PrepareRuntime(); err != nil {
		return nil, nil, err
	}

	extractor := execute.NewYtdlpExtractor(builder.Options{
		Executable:        s.YtdlpPath,
		DownloadDir:       s.DownloadDir,
		CookieSource:      s.CookieSource,
		Proxy:             s.Proxy,
		RestrictFilenames: s.RestrictFilenames,
	}, s.FetchTimeout, s.DownloadTimeout)

	logger.Pl.D(1, "Using yt-dlp at %q, downloading to %q", s.YtdlpPath, s.DownloadDir)
	return s, app.NewService(extractor), nil
}

// newServeCmd runs the web server until ctx is done.
func newServeCmd(ctx context.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the web UI and HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, svc, err := newService()
			if err != nil {
				return err
			}

			store := session.NewStore(ctx, svc, session.StoreConfig{
				Debounce:   s.FetchDebounce,
				TTL:        s.SessionTTL,
				FetchRate:  s.RateLimit,
				FetchBurst: s.RateBurst,
			})
			go store.Run(ctx, consts.SessionSweepInterval)

			return server.StartServer(ctx, s.Host, s.Port, server.Deps{
				Service:     svc,
				Sessions:    store,
				DownloadDir: s.DownloadDir,
				RateLimit:   s.RateLimit,
				RateBurst:   s.RateBurst,
			})
		},
	}
}

// newFormatsCmd prints the catalog for a URL.
func newFormatsCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "formats <url>",
		Short: "List the available formats for a video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, svc, err := newService()
			if err != nil {
				return err
			}
			c, err := svc.GetCatalog(ctx, args[0])
			if err != nil {
				return err
			}
			if asJSON, _ := cmd.Flags().GetBool(keys.JSONOut); asJSON {
				return writeJSON(cmd.OutOrStdout(), c)
			}
			return print.Catalog(cmd.OutOrStdout(), c, !s.NoColor)
		},
	}
	cfgflags.InitOutputFlags(cmd)
	return cmd
}

// newDownloadCmd downloads a URL, optionally in a given format.
func newDownloadCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "download <url>",
		Short: "Download a video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, svc, err := newService()
			if err != nil {
				return err
			}
			formatID, _ := cmd.Flags().GetString(keys.FormatID)
			res, err := svc.Download(ctx, args[0], formatID)
			if err != nil {
				return err
			}
			if asJSON, _ := cmd.Flags().GetBool(keys.JSONOut); asJSON {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			return print.Download(cmd.OutOrStdout(), res, !s.NoColor)
		},
	}
	cfgflags.InitDownloadFlags(cmd)
	cfgflags.InitOutputFlags(cmd)
	return cmd
}

// newPlatformsCmd lists the supported platforms.
func newPlatformsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "platforms",
		Short: "List supported platforms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range validation.SupportedPlatforms() {
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%-12s %v\n", p.Name, p.Domains); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
