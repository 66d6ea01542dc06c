package command

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"runtime"
	"strings"
	"time"

	unixtable "github.com/frantjc/go-encoding-unixtable"
	ingress "github.com/frantjc/go-ingress"
	xslice "github.com/frantjc/x/slice"
	"github.com/otasign/otasign"
	"github.com/otasign/otasign/internal/signhttp"
	"github.com/otasign/otasign/internal/signregexp"
	"github.com/otasign/otasign/zsign"
	"github.com/spf13/cobra"
	"gocloud.dev/blob"
	"golang.org/x/sync/errgroup"
)

// NewOtasign returns the root command for
// otasign which acts as its CLI entrypoint.
func NewOtasign() *cobra.Command {
	var (
		address        string
		urlstr         string
		bloburlstr     string
		zsignPath      string
		signTimeout    time.Duration
		maxUploadBytes int64
		verbosity      int
		cmd            = &cobra.Command{
			Use:           "otasign",
			Version:       otasign.SemVer(),
			SilenceErrors: true,
			SilenceUsage:  true,
			PersistentPreRun: func(cmd *cobra.Command, _ []string) {
				if verbose := os.Getenv("OTASIGN_VERBOSE"); verbose != "" && xslice.Some([]string{"1", "y", "yes", "true", "t"}, func(s string, _ int) bool {
					return strings.EqualFold(s, verbose)
				}) {
					verbosity = 2
				}

				cmd.SetContext(
					otasign.WithLogger(
						cmd.Context(), otasign.NewLogger().V(2-verbosity),
					),
				)
			},
			RunE: func(cmd *cobra.Command, args []string) error {
				var (
					ctx = cmd.Context()
					log = otasign.LoggerFrom(ctx)
				)

				log.Info("opening bucket " + bloburlstr)
				bucket, err := blob.OpenBucket(ctx, bloburlstr)
				if err != nil {
					return err
				}
				defer bucket.Close()

				if zsignPath == "" {
					zsignPath = os.Getenv("OTASIGN_ZSIGN")
				}
				if zsignPath == "" {
					zsignPath = "zsign"
				}

				var base *url.URL
				if urlstr != "" {
					if base, err = url.Parse(urlstr); err != nil {
						return err
					}
				}

				srv := &http.Server{
					ReadHeaderTimeout: time.Second * 5,
					BaseContext: func(l net.Listener) context.Context {
						return ctx
					},
					Handler: ingress.New(
						ingress.ExactPath("/healthz", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
							fmt.Fprint(w, "ok")
						})),
						ingress.ExactPath("/readyz", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
							fmt.Fprint(w, "ok")
						})),
						ingress.PrefixPath("/", signhttp.NewHandler(
							zsign.NewSigner(zsignPath),
							bucket,
							base,
							&signhttp.HandlerOpts{
								MaxUploadBytes: maxUploadBytes,
								SignTimeout:    signTimeout,
							},
						)),
					),
				}
				defer srv.Close()

				lis, err := net.Listen("tcp", address)
				if err != nil {
					return err
				}
				defer lis.Close()

				eg, ctx := errgroup.WithContext(ctx)

				eg.Go(func() error {
					log.Info("listening on " + address + " with signer " + zsignPath)
					return srv.Serve(lis)
				})

				eg.Go(func() error {
					<-ctx.Done()

					sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Second*30)
					defer cancel()

					if err := srv.Shutdown(sctx); err != nil {
						return err
					}

					return ctx.Err()
				})

				return eg.Wait()
			},
		}
	)

	cmd.SetVersionTemplate("{{ .Name }}{{ .Version }} " + runtime.Version() + "\n")
	cmd.PersistentFlags().CountVarP(&verbosity, "verbose", "V", "verbosity for otasign")
	cmd.PersistentFlags().StringVar(&urlstr, "url", "", "base URL for otasign")

	cmd.Flags().StringVar(&address, "addr", ":8080", "listen address for otasign")
	cmd.Flags().StringVar(&bloburlstr, "blob", "mem://", "blob URL for otasign")
	cmd.Flags().StringVar(&zsignPath, "zsign", "", "path to the zsign executable")
	cmd.Flags().DurationVar(&signTimeout, "timeout", time.Minute*10, "timeout for a signing invocation")
	cmd.Flags().Int64Var(&maxUploadBytes, "max-upload-bytes", 1<<30, "maximum upload size in bytes")

	cmd.AddCommand(newSign())

	return cmd
}

func newSign() *cobra.Command {
	var (
		password string
		cmd      = &cobra.Command{
			Use:           "sign <app.ipa> <cert.p12> <profile.mobileprovision>",
			Version:       otasign.SemVer(),
			Args:          cobra.ExactArgs(3),
			SilenceErrors: true,
			SilenceUsage:  true,
			RunE: func(cmd *cobra.Command, args []string) error {
				var (
					ctx = cmd.Context()
					cli = new(otasign.Client)
				)

				if !signregexp.IsIPA(args[0]) {
					return fmt.Errorf("invalid .ipa %s", args[0])
				}

				if !signregexp.IsP12(args[1]) {
					return fmt.Errorf("invalid .p12 %s", args[1])
				}

				if !signregexp.IsMobileProvision(args[2]) {
					return fmt.Errorf("invalid .mobileprovision %s", args[2])
				}

				if urlstr := cmd.Flag("url").Value.String(); urlstr != "" {
					var err error
					if cli.Base, err = url.Parse(urlstr); err != nil {
						return err
					}
				}

				if password == "" {
					password = os.Getenv("OTASIGN_PASSWORD")
				}

				app, err := cli.Sign(ctx, args[0], args[1], args[2], password)
				if err != nil {
					return err
				}

				return unixtable.NewEncoder(cmd.OutOrStdout()).Encode(app)
			},
		}
	)

	cmd.SetVersionTemplate("{{ .Name }}{{ .Version }} " + runtime.Version() + "\n")
	cmd.Flags().StringVar(&password, "password", "", "password for the .p12 certificate")

	return cmd
}
