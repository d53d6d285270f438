package main

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/viewkit-dev/viewkit"
	"github.com/viewkit-dev/viewkit/internal/config"
	"github.com/viewkit-dev/viewkit/pkg/engine/scriggoeval"
	"github.com/viewkit-dev/viewkit/pkg/link"
	"github.com/viewkit-dev/viewkit/pkg/render"
	"github.com/viewkit-dev/viewkit/pkg/view"
)

func renderCmd() *cobra.Command {
	var (
		configPath string
		params     []string
		recurse    bool
		depth      int
	)

	cmd := &cobra.Command{
		Use:   "render FILE",
		Short: "Evaluate a single template file to stdout",
		Long: `render evaluates one template file against a synthetic GET request
and writes the result to stdout. Request parameters are supplied with
--param key=value and are visible to the link tool.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			q := url.Values{}
			for _, p := range params {
				key, value, found := strings.Cut(p, "=")
				if !found {
					return fmt.Errorf("invalid --param %q, expected key=value", p)
				}
				q.Add(key, value)
			}
			u := url.URL{
				Scheme:   "http",
				Host:     "localhost",
				Path:     cfg.Root + "/" + filepath.Base(args[0]),
				RawQuery: q.Encode(),
			}
			req, err := http.NewRequestWithContext(cmd.Context(), http.MethodGet, u.String(), nil)
			if err != nil {
				return err
			}
			vc := view.NewContext(req,
				view.WithRoot(cfg.Root),
				view.WithCharset(cfg.Charset),
			)

			toolbox := viewkit.NewToolbox()
			if err := toolbox.Register("link", link.NewTool(), viewkit.ScopeRequest); err != nil {
				return err
			}
			tool := render.NewTool(scriggoeval.New())
			if err := toolbox.Register("render", tool, viewkit.ScopeApplication); err != nil {
				return err
			}
			if err := toolbox.Configure(cfg.ToolConfigs()); err != nil {
				return err
			}
			if depth > 0 {
				if err := tool.Configure(viewkit.Config{render.ParseDepthKey: depth}); err != nil {
					return err
				}
			}

			scope, err := toolbox.ScopeFor(vc)
			if err != nil {
				return err
			}

			eval := tool.Eval
			if recurse {
				eval = tool.Recurse
			}
			out, ok, err := eval(cmd.Context(), render.Scope(scope), string(src))
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%s produced no output", args[0])
			}
			fmt.Println(out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to viewkit.yaml")
	cmd.Flags().StringArrayVarP(&params, "param", "p", nil, "request parameter key=value (repeatable)")
	cmd.Flags().BoolVarP(&recurse, "recurse", "r", false, "re-evaluate output until it stabilizes")
	cmd.Flags().IntVar(&depth, "depth", 0, "recursion depth bound (overrides config)")
	return cmd
}
