package main

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/ilkoid/paintmix/pkg/app"
	"github.com/ilkoid/paintmix/pkg/colorspace"
	"github.com/ilkoid/paintmix/pkg/palette"
)

// command — подкоманда CLI. setup регистрирует флаги и возвращает
// функцию, которая выполняется после разбора аргументов.
type command struct {
	name  string
	usage string
	setup func(fs *flag.FlagSet) func(ctx context.Context, c *app.Components, out *printer) error
}

var commandOrder = []string{"import", "snapshots", "duplicates", "match", "rename"}

var commands = map[string]command{
	"import": {
		name:  "import",
		usage: "Import palette snapshot (-file path | -s3 prefix)",
		setup: setupImport,
	},
	"snapshots": {
		name:  "snapshots",
		usage: "List palette snapshots in the S3 bucket [-prefix P]",
		setup: setupSnapshots,
	},
	"duplicates": {
		name:  "duplicates",
		usage: "Group colors whose formulas mix the same pigments in the same ratio",
		setup: setupDuplicates,
	},
	"match": {
		name:  "match",
		usage: "Find nearest stored colors (-color notation | -image path) [-limit N]",
		setup: setupMatch,
	},
	"rename": {
		name:  "rename",
		usage: "Rename pigment in every formula (-from OLD -to NEW)",
		setup: setupRename,
	},
}

func setupImport(fs *flag.FlagSet) func(context.Context, *app.Components, *printer) error {
	file := fs.String("file", "", "Path to YAML snapshot")
	s3Prefix := fs.String("s3", "", "S3 prefix with YAML snapshots (\"-\" for s3.prefix from config)")

	return func(ctx context.Context, c *app.Components, out *printer) error {
		var (
			n   int
			err error
		)
		switch {
		case *file != "" && *s3Prefix != "":
			return errors.New("import: -file and -s3 are mutually exclusive")
		case *file != "":
			n, err = c.ImportFile(ctx, *file)
		case *s3Prefix != "":
			prefix := *s3Prefix
			if prefix == "-" {
				prefix = ""
			}
			n, err = c.ImportS3(ctx, prefix)
		default:
			return errors.New("import: -file or -s3 is required")
		}
		if err != nil {
			return err
		}
		return out.Imported(n)
	}
}

func setupSnapshots(fs *flag.FlagSet) func(context.Context, *app.Components, *printer) error {
	prefix := fs.String("prefix", "", "S3 prefix (default s3.prefix from config)")

	return func(ctx context.Context, c *app.Components, out *printer) error {
		objects, err := c.Snapshots(ctx, *prefix)
		if err != nil {
			return err
		}
		return out.Snapshots(objects)
	}
}

func setupDuplicates(fs *flag.FlagSet) func(context.Context, *app.Components, *printer) error {
	return func(ctx context.Context, c *app.Components, out *printer) error {
		groups, err := c.Duplicates(ctx)
		if err != nil {
			return err
		}
		return out.Duplicates(groups)
	}
}

func setupMatch(fs *flag.FlagSet) func(context.Context, *app.Components, *printer) error {
	notation := fs.String("color", "", "Target color: #RRGGBB, rgb(r,g,b), cmyk(c,m,y,k) or hsl(h,s,l)")
	image := fs.String("image", "", "Path to swatch photo (JPEG/PNG)")
	limit := fs.Int("limit", 0, "Max results (default matching.default_limit)")

	return func(ctx context.Context, c *app.Components, out *printer) error {
		var (
			target  colorspace.RGB
			results []palette.MatchResult
			err     error
		)
		switch {
		case *notation != "" && *image != "":
			return errors.New("match: -color and -image are mutually exclusive")
		case *notation != "":
			v, perr := colorspace.Parse(*notation)
			if perr != nil {
				return fmt.Errorf("match: %w", perr)
			}
			target, results, err = c.Match(ctx, v, *limit)
		case *image != "":
			target, results, err = c.MatchImage(ctx, *image, *limit)
		default:
			return errors.New("match: -color or -image is required")
		}
		if err != nil {
			return err
		}
		return out.Matches(target, results)
	}
}

func setupRename(fs *flag.FlagSet) func(context.Context, *app.Components, *printer) error {
	from := fs.String("from", "", "Current pigment name")
	to := fs.String("to", "", "New pigment name")

	return func(ctx context.Context, c *app.Components, out *printer) error {
		if *from == "" {
			return errors.New("rename: -from is required")
		}
		n, err := c.Rename(ctx, *from, *to)
		if err != nil {
			return err
		}
		return out.Renamed(*from, *to, n)
	}
}
