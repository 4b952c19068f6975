package catalog

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
	cs "github.com/webtor-io/common-services"
)

const (
	DatasetPathFlag     = "dataset-path"
	DatasetS3BucketFlag = "dataset-s3-bucket"
	DatasetS3KeyFlag    = "dataset-s3-key"
)

func RegisterFlags(f []cli.Flag) []cli.Flag {
	return append(f,
		cli.StringFlag{
			Name:   DatasetPathFlag,
			Usage:  "path to titles csv",
			Value:  "netflix_titles.csv",
			EnvVar: "DATASET_PATH",
		},
		cli.StringFlag{
			Name:   DatasetS3BucketFlag,
			Usage:  "s3 bucket with titles csv",
			EnvVar: "DATASET_S3_BUCKET",
		},
		cli.StringFlag{
			Name:   DatasetS3KeyFlag,
			Usage:  "s3 key with titles csv",
			Value:  "netflix_titles.csv",
			EnvVar: "DATASET_S3_KEY",
		},
	)
}

// Loader reads the titles dataset from a local file or, when a bucket is
// configured, from S3.
type Loader struct {
	path   string
	bucket string
	key    string
	s3     *cs.S3Client
}

func NewLoader(c *cli.Context, s3Cl *cs.S3Client) *Loader {
	return &Loader{
		path:   c.String(DatasetPathFlag),
		bucket: c.String(DatasetS3BucketFlag),
		key:    c.String(DatasetS3KeyFlag),
		s3:     s3Cl,
	}
}

func (s *Loader) Load(ctx context.Context) (*Dataset, error) {
	var (
		ds  *Dataset
		err error
	)
	if s.bucket != "" {
		ds, err = s.loadS3(ctx)
	} else {
		ds, err = s.loadFile()
	}
	if err != nil {
		return nil, err
	}
	log.Infof("loaded %v titles from %v (%v skipped, %v without added date)",
		ds.Report.Rows, ds.Report.Source, ds.Report.SkippedRows, ds.Report.UnparsedDates)
	return ds, nil
}

func (s *Loader) loadFile() (*Dataset, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open dataset %v", s.path)
	}
	defer func() {
		_ = f.Close()
	}()
	return Parse(f, s.path)
}

func (s *Loader) loadS3(ctx context.Context) (*Dataset, error) {
	source := fmt.Sprintf("s3://%v/%v", s.bucket, s.key)
	if s.s3 == nil || s.s3.Get() == nil {
		return nil, errors.Errorf("failed to load dataset %v: s3 client not configured", source)
	}
	r, err := s.s3.Get().GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch dataset %v", source)
	}
	defer func() {
		_ = r.Body.Close()
	}()
	return Parse(r.Body, source)
}
