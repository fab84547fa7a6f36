package datasource

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rxtech-lab/argo-strategy/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type DuckDBLoaderTestSuite struct {
	suite.Suite

	loader *DuckDBLoader
}

func TestDuckDBLoaderSuite(t *testing.T) {
	suite.Run(t, new(DuckDBLoaderTestSuite))
}

func (suite *DuckDBLoaderTestSuite) SetupTest() {
	loader, err := NewDuckDBLoader(nil)
	suite.Require().NoError(err)
	suite.loader = loader
}

func (suite *DuckDBLoaderTestSuite) TearDownTest() {
	suite.NoError(suite.loader.Close())
}

func (suite *DuckDBLoaderTestSuite) writeCSV(content string) string {
	path := filepath.Join(suite.T().TempDir(), "bars.csv")
	suite.Require().NoError(os.WriteFile(path, []byte(content), 0o644))

	return path
}

func (suite *DuckDBLoaderTestSuite) TestLoadBarsFromCSV() {
	// Rows deliberately out of order; the loader sorts by time.
	path := suite.writeCSV(`time,open,high,low,close,volume
2024-01-01 00:02:00,102,104,101,103,1200
2024-01-01 00:00:00,100,101,99,100,1000
2024-01-01 00:01:00,100,103,100,102,1100
`)

	bars, err := suite.loader.LoadBars(path)
	suite.Require().NoError(err)
	suite.Require().Len(bars, 3)

	suite.True(bars[0].Time.Before(bars[1].Time))
	suite.True(bars[1].Time.Before(bars[2].Time))

	suite.InDelta(100.0, bars[0].Open, 1e-9)
	suite.InDelta(101.0, bars[0].High, 1e-9)
	suite.InDelta(99.0, bars[0].Low, 1e-9)
	suite.InDelta(100.0, bars[0].Close, 1e-9)
	suite.InDelta(1000.0, bars[0].Volume, 1e-9)

	suite.Equal(time.Minute, bars[1].Time.Sub(bars[0].Time))
}

func (suite *DuckDBLoaderTestSuite) TestLoadBarsEmptyFile() {
	path := suite.writeCSV("time,open,high,low,close,volume\n")

	_, err := suite.loader.LoadBars(path)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeDataNotFound))
}

func (suite *DuckDBLoaderTestSuite) TestUnsupportedExtension() {
	_, err := suite.loader.LoadBars("bars.json")
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidParameter))
}

func (suite *DuckDBLoaderTestSuite) TestMissingFile() {
	_, err := suite.loader.LoadBars(filepath.Join(suite.T().TempDir(), "nope.csv"))
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeQueryFailed))
}
