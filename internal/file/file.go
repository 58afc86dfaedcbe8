package file

import (
	"context"
	"fmt"
	"io"

	"localmart/internal/structs"
	"localmart/pkg/config"
	"localmart/pkg/filemanager"
	"localmart/pkg/logger"
	"localmart/pkg/utils"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

var (
	Module = fx.Provide(New)
)

const imagesDir = "images/"

type (
	Params struct {
		fx.In
		FileManager filemanager.File
		Config      config.IConfig
		Logger      logger.Logger
	}

	Service interface {
		Upload(ctx context.Context, src io.Reader, originalName string) (structs.UploadedImage, error)
		Remove(ctx context.Context, fileName string) error
	}

	service struct {
		fileManager filemanager.File
		logger      logger.Logger
		bucket      string
		region      string
	}
)

func New(p Params) Service {
	return &service{
		fileManager: p.FileManager,
		logger:      p.Logger,
		bucket:      p.Config.GetString("aws_s3_bucket"),
		region:      p.Config.GetString("aws_region"),
	}
}

func (s service) Upload(ctx context.Context, src io.Reader, originalName string) (structs.UploadedImage, error) {
	fileName := utils.GenUploadName(originalName)

	if err := s.fileManager.Upload(ctx, src, imagesDir, fileName); err != nil {
		s.logger.Error(ctx, "->fileManager.Upload", zap.Error(err))
		return structs.UploadedImage{}, err
	}

	return structs.UploadedImage{
		FileName: fileName,
		Url:      fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s%s", s.bucket, s.region, imagesDir, fileName),
	}, nil
}

func (s service) Remove(ctx context.Context, fileName string) error {
	if err := s.fileManager.Remove(ctx, imagesDir, fileName); err != nil {
		s.logger.Error(ctx, "->fileManager.Remove", zap.Error(err))
		return err
	}
	return nil
}
