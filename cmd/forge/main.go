package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/forgehub/forge"
)

type CLI struct {
	Config  string `help:"Path to a YAML config file." short:"c" type:"existingfile" optional:""`
	Token   string `help:"API token (overrides config)." env:"FORGE_TOKEN"`
	BaseURL string `help:"API base URL (overrides config)." name:"base-url"`
	Verbose bool   `help:"Log every request." short:"v"`

	Version      VersionCmd      `cmd:"" help:"Print version information."`
	Repos        ReposCmd        `cmd:"" help:"List repositories for a user."`
	Repo         RepoCmd         `cmd:"" help:"Show a repository."`
	Branches     BranchesCmd     `cmd:"" help:"List branches of a repository."`
	Contributors ContributorsCmd `cmd:"" help:"List contributors of a repository."`
}

// client builds the SDK client from config file and flag overrides.
func (c *CLI) client() (*forge.Client, error) {
	cfg := forge.Config{BaseURL: forge.DefaultBaseURL}
	if c.Config != "" {
		loaded, err := forge.LoadConfig(c.Config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if c.Token != "" {
		cfg.Token = c.Token
	}
	if c.BaseURL != "" {
		cfg.BaseURL = c.BaseURL
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client := forge.NewClientFromConfig(cfg)
	if c.Verbose {
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		client.WithLogger(logger).
			WithUnaryInterceptor(forge.LoggingInterceptor(logger))
	}
	return client, nil
}

type VersionCmd struct{}

func (v *VersionCmd) Run() error {
	fmt.Println(Version())
	return nil
}

type ReposCmd struct {
	User string `arg:"" help:"User whose repositories to list."`
}

func (r *ReposCmd) Run(cli *CLI) error {
	client, err := cli.client()
	if err != nil {
		return err
	}
	_, err = client.Repos().ListFor(context.Background(), r.User, func(repo forge.Resource) {
		fmt.Printf("%s\t%s\n", repo.String("full_name"), repo.String("description"))
	})
	return err
}

type RepoCmd struct {
	Owner string `arg:"" help:"Repository owner."`
	Name  string `arg:"" help:"Repository name."`
}

func (r *RepoCmd) Run(cli *CLI) error {
	client, err := cli.client()
	if err != nil {
		return err
	}
	repo, err := client.Repos().Get(context.Background(), r.Owner, r.Name)
	if err != nil {
		return err
	}
	fmt.Printf("%s\n", repo.String("full_name"))
	if desc := repo.String("description"); desc != "" {
		fmt.Printf("  %s\n", desc)
	}
	fmt.Printf("  default branch: %s\n", repo.String("default_branch"))
	fmt.Printf("  stars: %d  forks: %d\n", repo.Int("stargazers_count"), repo.Int("forks_count"))
	return nil
}

type BranchesCmd struct {
	Owner     string `arg:"" help:"Repository owner."`
	Name      string `arg:"" help:"Repository name."`
	Protected bool   `help:"Only protected branches."`
}

func (b *BranchesCmd) Run(cli *CLI) error {
	client, err := cli.client()
	if err != nil {
		return err
	}
	opts := map[string]any{}
	if b.Protected {
		opts["protected"] = true
	}
	_, err = client.Repo(b.Owner, b.Name).Branches(context.Background(), opts, func(br forge.Resource) {
		fmt.Println(br.String("name"))
	})
	return err
}

type ContributorsCmd struct {
	Owner string `arg:"" help:"Repository owner."`
	Name  string `arg:"" help:"Repository name."`
}

func (c *ContributorsCmd) Run(cli *CLI) error {
	client, err := cli.client()
	if err != nil {
		return err
	}
	_, err = client.Repo(c.Owner, c.Name).Contributors(context.Background(), func(u forge.Resource) {
		fmt.Printf("%s\t%d\n", u.String("login"), u.Int("contributions"))
	})
	return err
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("forge"),
		kong.Description("Forge CLI: inspect repositories via the Forge API."),
		kong.UsageOnError(),
	)
	err := ctx.Run(cli)
	if err != nil && forge.IsNotFound(err) {
		fmt.Fprintln(os.Stderr, "not found:", err)
		os.Exit(1)
	}
	ctx.FatalIfErrorf(err)
}
