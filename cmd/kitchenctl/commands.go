package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/google/subcommands"

	"github.com/jhoicas/kitchen-inventory/internal/application/dto"
	"github.com/jhoicas/kitchen-inventory/internal/bootstrap"
	"github.com/jhoicas/kitchen-inventory/internal/domain/entity"
	"github.com/jhoicas/kitchen-inventory/internal/domain/repository"
	"github.com/jhoicas/kitchen-inventory/internal/infrastructure/fileio"
	"github.com/jhoicas/kitchen-inventory/pkg/config"
)

var commands = []subcommands.Command{
	&itemsCmd{},
	&importCmd{},
	&exportItemsCmd{},
	&exportMovementsCmd{},
	&exportXLSXCmd{},
	&reportCmd{},
	&diagnosticsCmd{},
	&infoCmd{},
}

var stdout io.Writer = os.Stdout

// run abre la aplicación, ejecuta fn y cierra todo.
func run(ctx context.Context, fn func(a *bootstrap.App) error) subcommands.ExitStatus {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	a, err := bootstrap.New(ctx, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	if err := fn(a); err != nil {
		a.Log.Error().Err(err).Msg("command failed")
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// fileArg exige exactamente un argumento posicional.
func fileArg(f *flag.FlagSet) (string, bool) {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "exactly one file argument is required")
		return "", false
	}
	return f.Arg(0), true
}

// ─────────────────────────────────────────────────────────────────────────────
// items
// ─────────────────────────────────────────────────────────────────────────────

type itemsCmd struct {
	query     string
	attention bool
}

func (*itemsCmd) Name() string     { return "items" }
func (*itemsCmd) Synopsis() string { return "list items with their attention flags" }
func (*itemsCmd) Usage() string {
	return `kitchenctl items [-q <text>] [-attention]

  Lists items sorted by name. -q filters by name or unit (case-insensitive);
  -attention keeps only low-stock or expiring-soon items.
`
}

func (c *itemsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.query, "q", "", "Text to search in name or unit.")
	f.BoolVar(&c.attention, "attention", false, "Only items that need attention.")
}

func (c *itemsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(a *bootstrap.App) error {
		items, err := a.Inventory.ListItems(ctx, dto.ItemFilter{Query: c.query, AttentionOnly: c.attention})
		if err != nil {
			return err
		}
		return printItems(stdout, items, a)
	})
}

func printItems(w io.Writer, items []*entity.Item, a *bootstrap.App) error {
	rule := a.Inventory.AttentionRule()
	today := a.Inventory.Now()
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tQUANTITY\tUNIT\tEXPIRY\tFLAGS")
	for _, it := range items {
		expiry := ""
		if it.ExpiryDate != nil {
			expiry = it.ExpiryDate.Format(entity.ExpiryDateForm)
		}
		flags := ""
		if rule.LowStock(it) {
			flags += "low "
		}
		if rule.ExpiringSoon(it, today) {
			flags += "expiring"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", it.ID, it.Name, it.Quantity.String(), it.Unit, expiry, flags)
	}
	return tw.Flush()
}

// ─────────────────────────────────────────────────────────────────────────────
// import
// ─────────────────────────────────────────────────────────────────────────────

type importCmd struct{}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import items from a CSV file" }
func (*importCmd) Usage() string {
	return `kitchenctl import <file.csv>

  Matches rows by id or by case-insensitive name, merges them into the
  inventory and records one movement per quantity change. All or nothing.
`
}
func (*importCmd) SetFlags(*flag.FlagSet) {}

func (*importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	path, ok := fileArg(f)
	if !ok {
		return subcommands.ExitUsageError
	}
	return run(ctx, func(a *bootstrap.App) error {
		text, err := fileio.OpenText(path)
		if err != nil {
			return err
		}
		res, err := a.Inventory.ImportCSV(ctx, text)
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, res.StatusMessage)
		return nil
	})
}

// ─────────────────────────────────────────────────────────────────────────────
// export-items, export-movements
// ─────────────────────────────────────────────────────────────────────────────

type exportItemsCmd struct{}

func (*exportItemsCmd) Name() string           { return "export-items" }
func (*exportItemsCmd) Synopsis() string       { return "export all items to a CSV file" }
func (*exportItemsCmd) Usage() string          { return "kitchenctl export-items <file.csv>\n" }
func (*exportItemsCmd) SetFlags(*flag.FlagSet) {}

func (*exportItemsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	path, ok := fileArg(f)
	if !ok {
		return subcommands.ExitUsageError
	}
	return run(ctx, func(a *bootstrap.App) error {
		text, err := a.Inventory.ExportItemsCSV(ctx)
		if err != nil {
			return err
		}
		return fileio.SaveTextAs(path, text)
	})
}

type exportMovementsCmd struct {
	itemID int64
	limit  int
}

func (*exportMovementsCmd) Name() string     { return "export-movements" }
func (*exportMovementsCmd) Synopsis() string { return "export the movement ledger to a CSV file" }
func (*exportMovementsCmd) Usage() string {
	return "kitchenctl export-movements [-item <id>] [-limit <n>] <file.csv>\n"
}

func (c *exportMovementsCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&c.itemID, "item", 0, "Only movements of this item id.")
	f.IntVar(&c.limit, "limit", 0, "Maximum number of rows (0 = all).")
}

func (c *exportMovementsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	path, ok := fileArg(f)
	if !ok {
		return subcommands.ExitUsageError
	}
	filter := repository.MovementFilter{Limit: c.limit}
	if c.itemID > 0 {
		filter.ItemID = &c.itemID
	}
	return run(ctx, func(a *bootstrap.App) error {
		text, err := a.Inventory.ExportMovementsCSV(ctx, filter)
		if err != nil {
			return err
		}
		return fileio.SaveTextAs(path, text)
	})
}

// ─────────────────────────────────────────────────────────────────────────────
// export-xlsx, report, diagnostics
// ─────────────────────────────────────────────────────────────────────────────

type exportXLSXCmd struct{}

func (*exportXLSXCmd) Name() string           { return "export-xlsx" }
func (*exportXLSXCmd) Synopsis() string       { return "export items and movements to an Excel workbook" }
func (*exportXLSXCmd) Usage() string          { return "kitchenctl export-xlsx <file.xlsx>\n" }
func (*exportXLSXCmd) SetFlags(*flag.FlagSet) {}

func (*exportXLSXCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	path, ok := fileArg(f)
	if !ok {
		return subcommands.ExitUsageError
	}
	return run(ctx, func(a *bootstrap.App) error {
		out, _, err := a.Reports.WorkbookXLSX(ctx)
		if err != nil {
			return err
		}
		return fileio.SaveBytesAs(path, out)
	})
}

type reportCmd struct{}

func (*reportCmd) Name() string           { return "report" }
func (*reportCmd) Synopsis() string       { return "write the stock report as PDF" }
func (*reportCmd) Usage() string          { return "kitchenctl report <file.pdf>\n" }
func (*reportCmd) SetFlags(*flag.FlagSet) {}

func (*reportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	path, ok := fileArg(f)
	if !ok {
		return subcommands.ExitUsageError
	}
	return run(ctx, func(a *bootstrap.App) error {
		out, _, err := a.Reports.StockReportPDF(ctx)
		if err != nil {
			return err
		}
		return fileio.SaveBytesAs(path, out)
	})
}

type diagnosticsCmd struct{}

func (*diagnosticsCmd) Name() string     { return "diagnostics" }
func (*diagnosticsCmd) Synopsis() string { return "write a support bundle (zip)" }
func (*diagnosticsCmd) Usage() string {
	return `kitchenctl diagnostics <file.zip>

  Bundles environment and database info, preferences, the most recent log
  files and, for SQLite, a copy of the database.
`
}
func (*diagnosticsCmd) SetFlags(*flag.FlagSet) {}

func (*diagnosticsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	path, ok := fileArg(f)
	if !ok {
		return subcommands.ExitUsageError
	}
	return run(ctx, func(a *bootstrap.App) error {
		out, _, err := a.Support.Bundle(ctx)
		if err != nil {
			return err
		}
		return fileio.SaveBytesAs(path, out)
	})
}

// ─────────────────────────────────────────────────────────────────────────────
// info
// ─────────────────────────────────────────────────────────────────────────────

type infoCmd struct{}

func (*infoCmd) Name() string           { return "info" }
func (*infoCmd) Synopsis() string       { return "print database provider, target and health" }
func (*infoCmd) Usage() string          { return "kitchenctl info\n" }
func (*infoCmd) SetFlags(*flag.FlagSet) {}

func (*infoCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(a *bootstrap.App) error {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(a.Support.DatabaseInfo(ctx))
	})
}
