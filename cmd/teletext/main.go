package main

import (
	"bytes"
	"context"
	"fmt"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/ioutil"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/bodgit/teletext"
	"github.com/bodgit/teletext/acquire"
	"github.com/bodgit/teletext/config"
	"github.com/bodgit/teletext/newsapi"
	"github.com/bodgit/teletext/palette"
	"github.com/bodgit/teletext/render"
	"github.com/golang/freetype/truetype"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

const defaultDB = "teletext.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

type app struct {
	cfg    *config.Config
	format teletext.Format
	logger *log.Logger
	tt     *teletext.Teletext
}

func setup(c *cli.Context) (*app, error) {
	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}

	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}

	if c.IsSet("size") {
		cfg.Page.Size = c.Int("size")
	}
	if c.IsSet("legacy") {
		cfg.Page.Legacy = c.Bool("legacy")
	}
	if c.IsSet("font") {
		cfg.Page.Font = c.String("font")
	}
	if c.IsSet("out-dir") {
		cfg.Output.Dir = c.String("out-dir")
	}
	if c.IsSet("format") {
		cfg.Output.Format = c.String("format")
	}
	if c.IsSet("staging") {
		cfg.Output.Staging = c.String("staging")
	}
	if c.IsSet("db") || cfg.Output.Archive == "" {
		cfg.Output.Archive = c.String("db")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	format, err := teletext.ParseFormat(cfg.Output.Format)
	if err != nil {
		return nil, err
	}

	var f *truetype.Font
	if cfg.Page.Font != "" {
		f, err = render.LoadFont(cfg.Page.Font)
	} else {
		f, err = render.DefaultFont()
	}
	if err != nil {
		return nil, err
	}

	seed := time.Now().UnixNano()
	if c.IsSet("seed") {
		seed = c.Int64("seed")
	}

	a := acquire.New(cfg.Output.Staging, &http.Client{Timeout: cfg.Timeout()}, cfg.RetryPolicy(), logger)

	return &app{
		cfg:    cfg,
		format: format,
		logger: logger,
		tt:     teletext.New(a, f, seed, logger),
	}, nil
}

// save encodes p, archives it and writes it to the output directory. Pages
// already in the archive are skipped.
func (a *app) save(db *teletext.PageDB, p *teletext.Page) error {
	b := new(bytes.Buffer)
	if err := teletext.Encode(b, p.Image(), a.format); err != nil {
		return err
	}

	ok, err := db.Add(p, b.Bytes())
	if err != nil {
		return err
	}
	if !ok {
		a.logger.Printf("Skipping %q, already archived\n", p.Article().Title)
		return nil
	}

	if err := os.MkdirAll(a.cfg.Output.Dir, 0755); err != nil {
		return err
	}

	file := filepath.Join(a.cfg.Output.Dir, teletext.Filename(p, a.format))
	if err := ioutil.WriteFile(file, b.Bytes(), 0644); err != nil {
		return err
	}
	a.logger.Printf("Wrote %s\n", file)
	fmt.Println(file)

	return nil
}

func renderAction(c *cli.Context) error {
	a, err := setup(c)
	if err != nil {
		return cli.Exit(err, 1)
	}

	db, err := teletext.NewPageDB(a.cfg.Output.Archive)
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer db.Close()

	article := teletext.Article{
		Title:       c.String("title"),
		Description: c.String("description"),
		ImageURL:    c.String("image"),
		Source:      teletext.Source{Name: c.String("source")},
		Date:        c.String("date"),
	}
	if article.Date == "" {
		article.Date = time.Now().Format(time.RFC3339)
	}

	p, err := a.tt.Render(c.Context, article, a.cfg.Options())
	if err != nil {
		return cli.Exit(err, 1)
	}

	if err := a.save(db, p); err != nil {
		return cli.Exit(err, 1)
	}

	return nil
}

func newsAction(c *cli.Context) error {
	a, err := setup(c)
	if err != nil {
		return cli.Exit(err, 1)
	}

	query, number := a.cfg.News.Query, a.cfg.News.Number
	if c.IsSet("query") {
		query = c.String("query")
	}
	if c.IsSet("number") {
		number = c.Int("number")
	}

	client := newsapi.NewClient(c.String("api-key"), a.cfg.Timeout())
	articles, err := client.Everything(c.Context, query, number)
	if err != nil {
		return cli.Exit(err, 1)
	}
	a.logger.Printf("Found %d articles for %q\n", len(articles), query)

	db, err := teletext.NewPageDB(a.cfg.Output.Archive)
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer db.Close()

	workers := a.cfg.Fetch.Workers
	if c.IsSet("workers") {
		workers = c.Int("workers")
	}

	if err := a.tt.RenderAll(c.Context, articles, a.cfg.Options(), workers, func(p *teletext.Page) error {
		return a.save(db, p)
	}); err != nil {
		return cli.Exit(err, 1)
	}

	return nil
}

func listAction(c *cli.Context) error {
	db, err := teletext.NewPageDB(c.String("db"))
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer db.Close()

	records, err := db.List()
	if err != nil {
		return cli.Exit(err, 1)
	}

	for _, r := range records {
		fmt.Printf("%s  %s  %4d  %-20s  %s\n", r.ID, r.Created.Format("2006-01-02 15:04"), r.Size, r.Source, r.Title)
	}

	return nil
}

func exportAction(c *cli.Context) error {
	if c.NArg() < 2 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	db, err := teletext.NewPageDB(c.String("db"))
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer db.Close()

	r, err := db.Find(c.Args().Get(0))
	if err != nil {
		return cli.Exit(err, 1)
	}
	if r == nil {
		return cli.Exit(fmt.Sprintf("no such page %q", c.Args().Get(0)), 1)
	}

	if err := ioutil.WriteFile(c.Args().Get(1), r.Image, 0644); err != nil {
		return cli.Exit(err, 1)
	}

	return nil
}

func paletteAction(c *cli.Context) error {
	for i, colour := range palette.Teletext {
		fmt.Printf("%d  %-8s  %s\n", i, colour.Name, colour.Hex())
	}
	return nil
}

func main() {
	// A missing .env file is fine
	_ = godotenv.Load()

	app := cli.NewApp()

	app.Name = "teletext"
	app.Usage = "Render news articles as Teletext pages"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			EnvVars: []string{"TELETEXT_CONFIG"},
			Usage:   "path to YAML configuration",
		},
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"TELETEXT_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to page archive",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	pageFlags := []cli.Flag{
		&cli.IntFlag{
			Name:    "size",
			EnvVars: []string{"TELETEXT_SIZE"},
			Value:   teletext.DefaultSize,
			Usage:   "page width and height in pixels",
		},
		&cli.StringFlag{
			Name:    "out-dir",
			EnvVars: []string{"TELETEXT_OUT_DIR"},
			Value:   "./images",
			Usage:   "directory to write pages to",
		},
		&cli.StringFlag{
			Name:    "format",
			EnvVars: []string{"TELETEXT_FORMAT"},
			Value:   string(teletext.PNG),
			Usage:   "output format, png or gif",
		},
		&cli.StringFlag{
			Name:    "staging",
			EnvVars: []string{"TELETEXT_STAGING"},
			Value:   "./buffer",
			Usage:   "directory to stage downloaded photos in",
		},
		&cli.StringFlag{
			Name:    "font",
			EnvVars: []string{"TELETEXT_FONT"},
			Usage:   "TrueType font for the bars",
		},
		&cli.BoolFlag{
			Name:  "legacy",
			Usage: "use the legacy sampling and crop",
		},
		&cli.Int64Flag{
			Name:  "seed",
			Usage: "seed for random text colours",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "render",
			Usage:       "Render a single article",
			Description: "",
			Flags: append([]cli.Flag{
				&cli.StringFlag{
					Name:     "image",
					Required: true,
					Usage:    "photo URL or path",
				},
				&cli.StringFlag{
					Name:  "title",
					Usage: "article headline",
				},
				&cli.StringFlag{
					Name:  "description",
					Usage: "article description",
				},
				&cli.StringFlag{
					Name:  "source",
					Usage: "publisher name",
				},
				&cli.StringFlag{
					Name:  "date",
					Usage: "ISO-8601 publish date, defaults to now",
				},
			}, pageFlags...),
			Action: renderAction,
		},
		{
			Name:        "news",
			Usage:       "Render articles from NewsAPI",
			Description: "",
			Flags: append([]cli.Flag{
				&cli.StringFlag{
					Name:    "api-key",
					EnvVars: []string{"NEWSAPI_KEY"},
					Usage:   "NewsAPI key",
				},
				&cli.StringFlag{
					Name:  "query",
					Value: "Climate Change",
					Usage: "search query",
				},
				&cli.IntFlag{
					Name:  "number",
					Value: 1,
					Usage: "number of articles",
				},
				&cli.IntFlag{
					Name:  "workers",
					Value: teletext.DefaultWorkers,
					Usage: "pages to render concurrently",
				},
			}, pageFlags...),
			Action: newsAction,
		},
		{
			Name:        "list",
			Usage:       "List archived pages",
			Description: "",
			Action:      listAction,
		},
		{
			Name:        "export",
			Usage:       "Write an archived page to a file",
			Description: "",
			ArgsUsage:   "ID FILE",
			Action:      exportAction,
		},
		{
			Name:        "palette",
			Usage:       "Print the Teletext palette",
			Description: "",
			Action:      paletteAction,
		},
	}

	if err := app.RunContext(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
