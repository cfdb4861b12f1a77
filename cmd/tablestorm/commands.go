package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"golang.org/x/net/html"

	"github.com/dshills/tablestorm/internal/config"
	"github.com/dshills/tablestorm/internal/dom"
	"github.com/dshills/tablestorm/internal/export"
	"github.com/dshills/tablestorm/internal/selection"
	"github.com/dshills/tablestorm/internal/table/dialog"
	"github.com/dshills/tablestorm/internal/table/grid"
	"github.com/dshills/tablestorm/internal/table/layout"
	"github.com/dshills/tablestorm/internal/terminal"
)

func loadDocument(path string) (*html.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	doc, err := dom.Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return doc, nil
}

func pickTable(doc *html.Node, index int) (*html.Node, error) {
	tables := dom.QueryAll(doc, "//table")
	if index < 0 || index >= len(tables) {
		return nil, fmt.Errorf("table %d not found (document has %d)", index, len(tables))
	}
	return tables[index], nil
}

func (c *cli) editCmd() *cobra.Command {
	var exportPath string
	var save bool
	cmd := &cobra.Command{
		Use:   "edit FILE",
		Short: "Open FILE in the interactive table editor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDocument(args[0])
			if err != nil {
				return err
			}

			screen, err := tcell.NewScreen()
			if err != nil {
				return fmt.Errorf("creating screen: %w", err)
			}
			if err := screen.Init(); err != nil {
				return fmt.Errorf("initialising screen: %w", err)
			}
			defer screen.Fini()

			app, err := terminal.New(screen, doc, terminal.Options{
				Config:     c.cfg,
				Logger:     c.logger,
				ExportPath: exportPath,
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			if c.configPath != "" {
				go c.watch(ctx, app)
			}

			runErr := app.Run(ctx)
			app.Close()
			if runErr != nil {
				return runErr
			}
			if save {
				if err := os.WriteFile(args[0], []byte(dom.Render(doc)), 0644); err != nil {
					return fmt.Errorf("saving %s: %w", args[0], err)
				}
				c.logger.Info("document saved", "path", args[0])
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&exportPath, "export-path", terminal.DefaultExportPath, "Workbook written by the x key")
	cmd.Flags().BoolVar(&save, "save", false, "Write the edited document back to FILE on exit")
	return cmd
}

// watch forwards configuration changes to the editor.
func (c *cli) watch(ctx context.Context, app *terminal.App) {
	err := config.Watch(ctx, c.configPath, func(cfg *config.Config, err error) {
		if err != nil {
			c.logger.Warn("config reload failed", "error", err)
			return
		}
		app.Reload(cfg)
	})
	if err != nil {
		c.logger.Warn("config watch stopped", "error", err)
	}
}

func (c *cli) classifyCmd() *cobra.Command {
	var tableIndex int
	cmd := &cobra.Command{
		Use:   "classify FILE",
		Short: "Report whether the marked selection can be merged or unmerged",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDocument(args[0])
			if err != nil {
				return err
			}
			table, err := pickTable(doc, tableIndex)
			if err != nil {
				return err
			}

			e := c.cfg.Ephemera()
			snap := selection.FromTable(table, e)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "selection: %s (%d cells)\n", snap.Mode(), len(selection.Selection(snap)))
			if m, ok := selection.Mergeable(table, snap, e); ok {
				fmt.Fprintf(out, "mergeable: rows %d-%d, columns %d-%d\n",
					m.Bounds.StartRow, m.Bounds.FinishRow, m.Bounds.StartColumn, m.Bounds.FinishColumn)
			} else {
				fmt.Fprintln(out, "mergeable: no")
			}
			if cells, ok := selection.Unmergeable(snap); ok {
				fmt.Fprintf(out, "unmergeable: %d cells\n", len(cells))
			} else {
				fmt.Fprintln(out, "unmergeable: no")
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&tableIndex, "table", "t", 0, "Index of the table in the document")
	return cmd
}

func (c *cli) exportCmd() *cobra.Command {
	var tableIndex int
	var output, sheet string
	cmd := &cobra.Command{
		Use:   "export FILE",
		Short: "Write a table to an xlsx workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDocument(args[0])
			if err != nil {
				return err
			}
			table, err := pickTable(doc, tableIndex)
			if err != nil {
				return err
			}
			x := export.New(layout.New(c.cfg.Layout()), export.WithSheet(sheet), export.WithLogger(c.logger))
			if err := x.WriteFile(table, output); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "table.xlsx", "Output workbook path")
	cmd.Flags().StringVar(&sheet, "sheet", export.DefaultSheet, "Worksheet name")
	cmd.Flags().IntVarP(&tableIndex, "table", "t", 0, "Index of the table in the document")
	return cmd
}

func (c *cli) dialogCmd() *cobra.Command {
	var tableIndex, row int
	cmd := &cobra.Command{
		Use:   "dialog FILE",
		Short: "Print the row properties dialog for a row as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDocument(args[0])
			if err != nil {
				return err
			}
			table, err := pickTable(doc, tableIndex)
			if err != nil {
				return err
			}
			tr, ok := grid.Build(table).Row(row)
			if !ok {
				return fmt.Errorf("row %d not found", row)
			}

			items, err := dialog.GeneralTab(c.cfg.RowClassList)
			if err != nil {
				return err
			}
			out, err := dialog.Render(items, dialog.ReadRow(tr))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().IntVarP(&tableIndex, "table", "t", 0, "Index of the table in the document")
	cmd.Flags().IntVarP(&row, "row", "r", 0, "Grid row index")
	return cmd
}
