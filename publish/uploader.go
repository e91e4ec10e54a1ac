package publish

import (
	"fmt"
	"os"
	"strings"

	"github.com/eventials/go-tus"
	"github.com/eventials/go-tus/memorystore"
	"github.com/rs/zerolog"
	"github.com/soderasen-au/go-common/loggers"
	"github.com/soderasen-au/go-common/util"
)

const DEFAULT_CHUNK_SIZE_MB = 100

// Config points at a tus endpoint. Token, when set, is sent as a bearer
// Authorization header next to any extra Headers.
type Config struct {
	Endpoint    string            `json:"endpoint" yaml:"endpoint"`
	Token       string            `json:"token,omitempty" yaml:"token,omitempty"`
	Headers     map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
	ChunkSizeMB int64             `json:"chunk_size_mb,omitempty" yaml:"chunk_size_mb,omitempty"`
}

func (c *Config) Validate() *util.Result {
	if c.Endpoint == "" {
		return util.MsgError("PublishConfig", "no endpoint")
	}
	if c.ChunkSizeMB < 0 {
		return util.MsgError("PublishConfig", fmt.Sprintf("invalid chunk size %d", c.ChunkSizeMB))
	}
	if c.ChunkSizeMB == 0 {
		c.ChunkSizeMB = DEFAULT_CHUNK_SIZE_MB
	}
	return nil
}

// Uploader sends finished reports to a tus server. Upload fingerprints are
// kept in memory so a retried upload of the same file resumes.
type Uploader struct {
	Config    Config
	Logger    *zerolog.Logger
	tusClient *tus.Client
}

func NewUploader(cfg Config, logger *zerolog.Logger) (*Uploader, *util.Result) {
	if res := cfg.Validate(); res != nil {
		return nil, res.With("Validate")
	}
	if logger == nil {
		logger = loggers.NullLogger
	}

	store, err := memorystore.NewMemoryStore()
	if err != nil {
		return nil, util.Error("NewMemoryStore", err)
	}
	tusConfig := tus.DefaultConfig()
	tusConfig.ChunkSize = cfg.ChunkSizeMB * 1024 * 1024
	tusConfig.Resume = true
	tusConfig.Store = store
	if cfg.Token != "" {
		tusConfig.Header.Add("Authorization", fmt.Sprintf("Bearer %s", cfg.Token))
	}
	for k, v := range cfg.Headers {
		tusConfig.Header.Add(k, v)
	}
	tusClient, err := tus.NewClient(cfg.Endpoint, tusConfig)
	if err != nil {
		return nil, util.Error("New tus client", err)
	}

	return &Uploader{Config: cfg, Logger: logger, tusClient: tusClient}, nil
}

// Upload sends one file and returns the location the server assigned to it.
func (u *Uploader) Upload(filePath string) (location string, res *util.Result) {
	u.Logger.Info().Msgf("uploading %s to %s ...", filePath, u.tusClient.Url)

	f, err := os.Open(filePath)
	if err != nil {
		return "", util.Error("OpenFile", err)
	}
	defer f.Close()
	uploadTask, err := tus.NewUploadFromFile(f)
	if err != nil {
		return "", util.Error("NewTusUploadTask", err)
	}
	u.Logger.Debug().Msgf("upload fingerprint: %s", uploadTask.Fingerprint)

	uploader, err := u.tusClient.CreateUpload(uploadTask)
	if err != nil {
		return "", util.Error("CreateUpload", err)
	}
	location, ok := u.tusClient.Config.Store.Get(uploadTask.Fingerprint)
	if !ok {
		return "", util.MsgError("CreateUpload", "no file location is found")
	}
	u.Logger.Info().Msgf("upload location: %s", location)

	if err = uploader.Upload(); err != nil {
		return "", util.Error("Upload", err)
	}
	return location, nil
}

// FileID is the last path segment of an upload location.
func FileID(location string) string {
	location = strings.TrimRight(location, "/")
	return location[strings.LastIndex(location, "/")+1:]
}
