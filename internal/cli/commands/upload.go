package commands

import (
	"context"
	"strings"

	"GoMFiles/internal/cli/model"
	"GoMFiles/internal/config"
	"GoMFiles/pkg/mfiles"
)

type uploadCmd struct{}

func (uploadCmd) Name() string        { return "upload" }
func (uploadCmd) Description() string { return "Upload a local file as a new object" }
func (uploadCmd) Usage() string       { return "upload <path> [type] [class] [Prop=Value...]" }

func (uploadCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) == 0 {
		return ErrUsage
	}
	objType, objClass := mfiles.ByID(mfiles.ObjectTypeDocument), mfiles.ByID(mfiles.ClassUnclassifiedDocument)
	rest := args[1:]
	if len(rest) > 0 && !strings.Contains(rest[0], "=") {
		objType, rest = mfiles.ParseRef(rest[0]), rest[1:]
	}
	if len(rest) > 0 && !strings.Contains(rest[0], "=") {
		objClass, rest = mfiles.ParseRef(rest[0]), rest[1:]
	}
	props, err := parseProperties(rest)
	if err != nil {
		return err
	}
	c, err := connect(ctx, cfg)
	if err != nil {
		return err
	}
	ov, err := c.UploadFile(ctx, args[0], objType, objClass, props)
	if err != nil {
		return err
	}
	track(cfg, c, model.ActionUpload, ov)
	printObject("Uploaded: ", ov)
	return nil
}

func init() { RegisterCmd(uploadCmd{}) }
