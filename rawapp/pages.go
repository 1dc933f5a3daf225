package rawapp

import (
	"context"
	"io"
	"io/fs"
	"os"

	"github.com/advdv/rawhttp"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/cockroachdb/errors"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Page names of the static content served by [RegisterPages].
const (
	PageIndex    = "index.html"
	PageCat      = "cat.html"
	PageDog      = "dog.html"
	PageNotFound = "404.html"
)

// PageSource reads static content for page handlers.
type PageSource interface {
	ReadPage(ctx context.Context, name string) ([]byte, error)
}

// DirSource reads pages from a file system, usually a directory.
type DirSource struct {
	fsys fs.FS
}

// NewDirSource creates a page source reading from fsys.
func NewDirSource(fsys fs.FS) *DirSource {
	return &DirSource{fsys: fsys}
}

// ReadPage implements [PageSource].
func (s *DirSource) ReadPage(_ context.Context, name string) ([]byte, error) {
	data, err := fs.ReadFile(s.fsys, name)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read page %q", name)
	}

	return data, nil
}

// S3GetObjectAPI is the part of the S3 client the page source depends on.
type S3GetObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Source reads pages from objects in an S3 bucket.
type S3Source struct {
	client S3GetObjectAPI
	bucket string
}

// NewS3Source creates a page source reading objects from bucket.
func NewS3Source(client S3GetObjectAPI, bucket string) *S3Source {
	return &S3Source{client: client, bucket: bucket}
}

// ReadPage implements [PageSource].
func (s *S3Source) ReadPage(ctx context.Context, name string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(name),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get page %q from bucket %q", name, s.bucket)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read page %q from bucket %q", name, s.bucket)
	}

	return data, nil
}

// NewPageSource picks the page source from the environment: the S3 bucket when
// RAWHTTP_PAGES_BUCKET is set, the RAWHTTP_PAGES_DIR directory otherwise.
func NewPageSource(ctx context.Context, env Environment, tp trace.TracerProvider) (PageSource, error) {
	if env.pagesBucket() == "" {
		return NewDirSource(os.DirFS(env.pagesDir())), nil
	}

	cfg, err := NewAWSConfig(ctx, env, tp)
	if err != nil {
		return nil, err
	}

	return NewS3Source(s3.NewFromConfig(cfg), env.pagesBucket()), nil
}

// PageHandler serves the named page. A page that cannot be read is logged and served
// as an empty body rather than failing the request.
func PageHandler(src PageSource, name string, logs *zap.Logger) rawhttp.Handler {
	return rawhttp.HandlerFunc(func(ctx context.Context, w *rawhttp.Body) error {
		data, err := src.ReadPage(ctx, name)
		if err != nil {
			logs.Warn("failed to read page", zap.String("page", name), zap.Error(err))
			return nil
		}

		if _, err := w.Write(data); err != nil {
			return errors.Wrapf(err, "failed to write page %q", name)
		}

		return nil
	})
}

// RegisterPages attaches the static page routes to m: "/" serves the index page,
// "/miaou" the cat page and "/ouaf" the dog page. Misses are answered with the
// not-found page.
func RegisterPages(m *Mux, src PageSource, logs *zap.Logger) {
	m.Handle(rawhttp.MethodGet, "/", PageHandler(src, PageIndex, logs), "index")
	m.Handle(rawhttp.MethodGet, "/miaou", PageHandler(src, PageCat, logs), "cat")
	m.Handle(rawhttp.MethodGet, "/ouaf", PageHandler(src, PageDog, logs), "dog")
	m.NotFound(PageHandler(src, PageNotFound, logs))
}
