package cli

import (
	"fmt"
	"net"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/stratum-research/autoreadme/pkg/preview"
)

// previewCommand creates the preview command that serves the README locally.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		port int
		host string
	)

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Serve the generated README.md for local review",
		Long: `Serve README.md rendered as HTML, with the raw markdown at /raw and
config/assets/ at /assets/. The file is re-read on every request.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if port < 0 || port > 65535 {
				return fmt.Errorf("invalid port %d", port)
			}
			addr := net.JoinHostPort(host, strconv.Itoa(port))
			srv := preview.NewServer(c.workDir(), addr, c.Logger)

			printSuccess("Serving README preview at %s", StyleLink.Render("http://"+addr))
			printDetail("Press ctrl+c to stop")
			return srv.Run(cmd.Context())
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", preview.DefaultPort, "port to listen on")
	cmd.Flags().StringVar(&host, "host", "localhost", "interface to listen on")

	return cmd
}
