package rawapp

import (
	"time"

	iie "github.com/MawKKe/integer-interval-expressions-go"
	"github.com/advdv/rawhttp"
	"github.com/caarlos0/env/v11"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap/zapcore"
)

// Environment defines the interface that all environment configurations must implement.
// Embed BaseEnvironment in your struct to satisfy this interface.
type Environment interface {
	port() int
	serviceName() string
	logLevel() zapcore.Level
	otelExporter() string
	routerCapacity() int
	readBufferSize() int
	bodyLimit() int
	readTimeout() time.Duration
	writeTimeout() time.Duration
	pagesDir() string
	pagesBucket() string
	awsRegion() string
	warnStatusCodes() string
}

// BaseEnvironment contains the environment variables every server reads.
// Embed this in your custom environment struct.
type BaseEnvironment struct {
	Port           int           `env:"RAWHTTP_PORT" envDefault:"8080"`
	ServiceName    string        `env:"RAWHTTP_SERVICE_NAME" envDefault:"rawhttp"`
	LogLevel       zapcore.Level `env:"RAWHTTP_LOG_LEVEL" envDefault:"info"`
	OtelExporter   string        `env:"RAWHTTP_OTEL_EXPORTER" envDefault:"none"`
	RouterCapacity int           `env:"RAWHTTP_ROUTER_CAPACITY" envDefault:"64"`
	ReadBufferSize int           `env:"RAWHTTP_READ_BUFFER_SIZE" envDefault:"4096"`
	BodyLimit      int           `env:"RAWHTTP_BODY_LIMIT" envDefault:"-1"`
	ReadTimeout    time.Duration `env:"RAWHTTP_READ_TIMEOUT" envDefault:"0s"`
	WriteTimeout   time.Duration `env:"RAWHTTP_WRITE_TIMEOUT" envDefault:"0s"`
	PagesDir       string        `env:"RAWHTTP_PAGES_DIR" envDefault:"pages"`
	// PagesBucket switches the page source to S3 when set. Objects are read from the
	// bucket under the same names as files in PagesDir.
	PagesBucket string `env:"RAWHTTP_PAGES_BUCKET"`
	AWSRegion   string `env:"AWS_REGION"`
	// WarnStatusCodes is an interval expression (e.g. "404,500-599") of response codes
	// that are logged at warn level instead of debug.
	WarnStatusCodes string `env:"RAWHTTP_WARN_STATUS_CODES" envDefault:"500-599"`
}

func (e BaseEnvironment) port() int {
	return e.Port
}

func (e BaseEnvironment) serviceName() string {
	return e.ServiceName
}

func (e BaseEnvironment) logLevel() zapcore.Level {
	return e.LogLevel
}

func (e BaseEnvironment) otelExporter() string {
	return e.OtelExporter
}

func (e BaseEnvironment) routerCapacity() int {
	return e.RouterCapacity
}

func (e BaseEnvironment) readBufferSize() int {
	return e.ReadBufferSize
}

func (e BaseEnvironment) bodyLimit() int {
	return e.BodyLimit
}

func (e BaseEnvironment) readTimeout() time.Duration {
	return e.ReadTimeout
}

func (e BaseEnvironment) writeTimeout() time.Duration {
	return e.WriteTimeout
}

func (e BaseEnvironment) pagesDir() string {
	return e.PagesDir
}

func (e BaseEnvironment) pagesBucket() string {
	return e.PagesBucket
}

func (e BaseEnvironment) awsRegion() string {
	return e.AWSRegion
}

func (e BaseEnvironment) warnStatusCodes() string {
	return e.WarnStatusCodes
}

var _ Environment = BaseEnvironment{}

// ParseEnv parses environment variables into the given Environment type.
func ParseEnv[E Environment]() func() (E, error) {
	return func() (e E, err error) {
		if err := env.Parse(&e); err != nil {
			return e, errors.Wrap(err, "failed to parse environment")
		}

		if err := validate(e); err != nil {
			return e, errors.Wrap(err, "invalid environment")
		}

		return e, nil
	}
}

func validate(e Environment) error {
	if !rawhttp.IsPowerOfTwo(e.routerCapacity()) {
		return errors.Newf("RAWHTTP_ROUTER_CAPACITY must be a power of two, got: %d", e.routerCapacity())
	}

	if e.readBufferSize() <= 0 {
		return errors.Newf("RAWHTTP_READ_BUFFER_SIZE must be positive, got: %d", e.readBufferSize())
	}

	if e.port() < 0 || e.port() > 65535 {
		return errors.Newf("RAWHTTP_PORT out of range: %d", e.port())
	}

	if _, err := ParseStatusCodes(e.warnStatusCodes()); err != nil {
		return err
	}

	return nil
}

// StatusCodes matches response codes against an interval expression.
type StatusCodes struct {
	expr iie.Expression
}

// ParseStatusCodes parses an interval expression such as "400,500-599" or "500-".
func ParseStatusCodes(s string) (StatusCodes, error) {
	expr, err := iie.ParseExpression(s)
	if err != nil {
		return StatusCodes{}, errors.Wrapf(err, "failed to parse status code expression %q", s)
	}

	return StatusCodes{expr: expr}, nil
}

// Match reports whether code is covered by the expression.
func (c StatusCodes) Match(code rawhttp.Code) bool {
	return c.expr.Matches(int(code))
}
