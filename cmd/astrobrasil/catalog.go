package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"astrobrasil/internal/core"
	"astrobrasil/internal/i18n"
	"astrobrasil/internal/seed"
	"astrobrasil/pkg/domain"
)

func (c *cli) missionsCmd() *cobra.Command {
	var filter string
	cmd := &cobra.Command{
		Use:   "missions",
		Short: "List missions, optionally filtered by status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withRuntime(cmd, func(rt *runtime) error {
				return printJSON(cmd, rt.service.Missions(cmd.Context(), domain.ParseMissionStatus(filter)))
			})
		},
	}
	cmd.Flags().StringVar(&filter, "status", "all", "operational, future, closed or all")
	return cmd
}

func (c *cli) centersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "centers",
		Short: "List research centers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withRuntime(cmd, func(rt *runtime) error {
				return printJSON(cmd, rt.service.Centers(cmd.Context()))
			})
		},
	}
}

func (c *cli) summaryCmd() *cobra.Command {
	var lang string
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print catalog statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if lang == "" {
				lang = c.cfg.Locale
			}
			tag := i18n.Parse(lang)
			return c.withRuntime(cmd, func(rt *runtime) error {
				sum := rt.service.Summary(cmd.Context())
				return printJSON(cmd, struct {
					core.Summary
					Locale          string `json:"locale"`
					TotalInvestment string `json:"total_investment"`
				}{sum, tag.String(), i18n.FormatCurrency(tag, sum.TotalCost*1_000_000)})
			})
		},
	}
	cmd.Flags().StringVar(&lang, "lang", "", "locale for currency formatting (default from ASTRO_LOCALE)")
	return cmd
}

func (c *cli) prefCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pref",
		Short: "Read or write stored preferences",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "get <key>",
		Short: "Print a preference value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withRuntime(cmd, func(rt *runtime) error {
				value, ok, err := rt.service.Preference(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("%s: %w", args[0], domain.ErrPreferenceNotFound)
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), value)
				return err
			})
		},
	}, &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Store a preference value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withRuntime(cmd, func(rt *runtime) error {
				return rt.service.SetPreference(cmd.Context(), args[0], args[1])
			})
		},
	}, &cobra.Command{
		Use:   "toggle-theme",
		Short: "Flip between dark and light themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withRuntime(cmd, func(rt *runtime) error {
				dark, err := rt.service.ToggleTheme(cmd.Context())
				if err != nil {
					return err
				}
				theme := "light"
				if dark {
					theme = "dark"
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), theme)
				return err
			})
		},
	})
	return cmd
}

func (c *cli) seedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Manage the catalog seed document",
	}
	var file string
	publish := &cobra.Command{
		Use:   "publish",
		Short: "Write the catalog seed document (built-in catalog unless --file is given)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			missions, centers := core.DefaultMissions(), core.DefaultCenters()
			if file != "" {
				raw, err := os.ReadFile(file)
				if err != nil {
					return err
				}
				catalog, err := seed.Decode(raw)
				if err != nil {
					return err
				}
				missions, centers = catalog.ListMissions(domain.StatusAll), catalog.ListCenters()
			}
			return c.withRuntime(cmd, func(rt *runtime) error {
				info, err := rt.loader.Publish(cmd.Context(), missions, centers)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "published %s (%d bytes)\n", info.Key, info.Size)
				return err
			})
		},
	}
	publish.Flags().StringVar(&file, "file", "", "YAML or JSON seed file to publish")
	cmd.AddCommand(publish)
	return cmd
}

func (c *cli) statusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Publish or read global status announcements",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "announce <text>",
		Short: "Publish a status announcement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withRuntime(cmd, func(rt *runtime) error {
				p, err := rt.announcer.Announce(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd, p)
			})
		},
	}, &cobra.Command{
		Use:   "latest",
		Short: "Print the most recent announcement",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withRuntime(cmd, func(rt *runtime) error {
				p, ok, err := rt.announcer.Latest(cmd.Context())
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("no status announcements")
				}
				return printJSON(cmd, p)
			})
		},
	})
	return cmd
}
