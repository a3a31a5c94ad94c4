package commands

import (
	"context"
	"fmt"

	"GoMFiles/internal/cli/model"
	"GoMFiles/internal/config"
)

type downloadCmd struct{}

func (downloadCmd) Name() string { return "download" }
func (downloadCmd) Description() string {
	return "Download the first file of the top search hit for a name"
}
func (downloadCmd) Usage() string { return "download <file-name> [local-path]" }

func (downloadCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return ErrUsage
	}
	local := ""
	if len(args) == 2 {
		local = args[1]
	}
	c, err := connect(ctx, cfg)
	if err != nil {
		return err
	}
	ok, err := c.DownloadFileByName(ctx, args[0], local)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("nothing found for %q", args[0])
	}
	trackRef(cfg, c, model.ActionDownload, 0, 0, args[0])
	if local == "" {
		local = args[0]
	}
	fmt.Fprintf(Out, "Downloaded %s to %s\n", args[0], local)
	return nil
}

func init() { RegisterCmd(downloadCmd{}) }
