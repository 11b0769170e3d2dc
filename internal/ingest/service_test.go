package ingest_test

import (
	"context"
	"strings"
	"testing"

	"github.com/ganot/grantmap/internal/domain/activity"
	"github.com/ganot/grantmap/internal/ingest"
	"github.com/ganot/grantmap/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const export = `Grantee,Amount,Description,Website,Years,Focus Area,Service Area,Cancelled,Cancel Reason
Hopeloft,"$20,000",to fund a coworking newsroom,hopeloft.org,2024,Community,Cumberland County,,
Gone,$5,,,2023,X,Statewide,checked,withdrawn
Short,$1
Broken,n/a,desc,,2023,X,Statewide,,
`

func TestService_Ingest(t *testing.T) {
	ctx := context.Background()
	journal := &mocks.RunJournal{}
	journal.On("RecordRun", ctx, mock.MatchedBy(func(run activity.Run) bool {
		return run.Type == activity.TypeIngestRun && len(run.Anomalies) == 2
	})).Return(nil)

	svc := ingest.NewService(ingest.Converter{}, journal, nil)
	result, err := svc.Ingest(ctx, ingest.Request{Source: strings.NewReader(export), SourceName: "grants.csv"})
	require.NoError(t, err)
	journal.AssertExpectations(t)

	require.Equal(t, 3, result.Report.Rows)
	require.Equal(t, 2, result.Report.Entries)
	require.Equal(t, 1, result.Report.Cancelled)

	ds := result.Dataset
	require.Len(t, ds.Grantees, 2)
	require.Equal(t, 2, ds.Metadata.TotalGrantees)
	require.Equal(t, "$20,000", ds.Metadata.TotalFunding.String())
	require.Equal(t, "grants.csv", ds.Metadata.DataSource)
}

func TestService_IngestMalformed(t *testing.T) {
	journal := &mocks.RunJournal{}
	svc := ingest.NewService(ingest.Converter{}, journal, nil)

	_, err := svc.Ingest(context.Background(), ingest.Request{
		Source:     strings.NewReader("a,b\n\"oops,1\n"),
		SourceName: "bad.csv",
	})
	require.ErrorIs(t, err, ingest.ErrMalformedCSV)
	journal.AssertNotCalled(t, "RecordRun", mock.Anything, mock.Anything)
}
