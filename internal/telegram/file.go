package telegram

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// MaxDownloadSize is the largest file the Bot API lets bots download.
const MaxDownloadSize = 20 << 20

const downloadTimeout = 60 * time.Second

// FileSource resolves Telegram file ids; *bot.Bot satisfies it.
type FileSource interface {
	GetFile(ctx context.Context, params *bot.GetFileParams) (*models.File, error)
	FileDownloadLink(f *models.File) string
}

type FileLoader struct {
	Source FileSource
	Client *resty.Client
}

func NewFileLoader(source FileSource) *FileLoader {
	return &FileLoader{
		Source: source,
		Client: resty.New().SetTimeout(downloadTimeout),
	}
}

// Load downloads the bytes of the file with the given id.
func (l *FileLoader) Load(ctx context.Context, fileID string) ([]byte, error) {
	f, err := l.Source.GetFile(ctx, &bot.GetFileParams{FileID: fileID})
	if err != nil {
		log.Printf("[FileLoader.Load] getFile fileID=%s err=%v", fileID, err)
		return nil, fmt.Errorf("get file %s: %w", fileID, err)
	}
	if f == nil || f.FilePath == "" {
		log.Printf("[FileLoader.Load] no file path for fileID=%s", fileID)
		return nil, errors.New("telegram returned no file path")
	}
	if int64(f.FileSize) > MaxDownloadSize {
		log.Printf("[FileLoader.Load] file too big fileID=%s size=%d", fileID, f.FileSize)
		return nil, fmt.Errorf("file is too big to download: %d bytes", f.FileSize)
	}

	resp, err := l.Client.R().SetContext(ctx).Get(l.Source.FileDownloadLink(f))
	if err != nil {
		log.Printf("[FileLoader.Load] download fileID=%s err=%v", fileID, err)
		return nil, fmt.Errorf("download file: %w", err)
	}
	if resp.IsError() {
		log.Printf("[FileLoader.Load] download fileID=%s HTTP status: %d", fileID, resp.StatusCode())
		return nil, fmt.Errorf("download file: unexpected status %d", resp.StatusCode())
	}

	body := resp.Body()
	if len(body) == 0 {
		log.Printf("[FileLoader.Load] empty body fileID=%s", fileID)
		return nil, errors.New("downloaded file is empty")
	}

	log.Printf("[FileLoader.Load] fileID=%s bytes=%d", fileID, len(body))
	return body, nil
}
