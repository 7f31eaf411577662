package notify

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeployResultStatusStyling(t *testing.T) {
	success := DeployResult(DeployData{
		Channel:  "#general",
		EC2Name:  "vc-prod-1",
		ImageTag: "v1.4.2",
		Status:   "success",
		RunURL:   "https://github.com/aitrics/vc/actions/runs/42",
	})
	require.Len(t, success.Attachments, 1)
	assert.Equal(t, "good", success.Attachments[0].Color)
	assert.Contains(t, success.Text, "Succeeded")

	failure := DeployResult(DeployData{
		Channel: "#general",
		EC2Name: "vc-prod-1",
		Status:  "failure",
		RunURL:  "https://github.com/aitrics/vc/actions/runs/42",
	})
	require.Len(t, failure.Attachments, 1)
	assert.Equal(t, "danger", failure.Attachments[0].Color)
	assert.Contains(t, failure.Text, "Failed")
}

func TestBuildResultFailedJobsRendering(t *testing.T) {
	msg := BuildResult(BuildData{
		Channel:    "#general",
		JobName:    "ci",
		BranchName: "main",
		Status:     "failure",
		FailedJobs: []string{"lint", "test"},
		RunURL:     "https://github.com/aitrics/vc/actions/runs/42",
	})
	require.Len(t, msg.Attachments, 1)
	assert.Equal(t, "danger", msg.Attachments[0].Color)

	var failedValue string
	for _, f := range msg.Attachments[0].Fields {
		if f.Title == "Failed Jobs" {
			failedValue = f.Value
		}
	}
	assert.Equal(t, "`lint`\n`test`", failedValue)
}

func TestBuildResultSuccessOmitsFailedJobs(t *testing.T) {
	msg := BuildResult(BuildData{
		Channel:    "#general",
		JobName:    "ci",
		BranchName: "main",
		Status:     "success",
	})
	require.Len(t, msg.Attachments, 1)
	for _, f := range msg.Attachments[0].Fields {
		assert.NotEqual(t, "Failed Jobs", f.Title)
	}
}

func TestDigestAggregatesReviewerStatus(t *testing.T) {
	msg := Digest(DigestData{
		Channel: "#team-backend",
		PRTitle: "Add vitals exporter",
		PRURL:   "https://github.com/aitrics/vc/pull/7",
		Author:  "Kim Minsoo",
		Reviewers: []ReviewerLine{
			{Name: "Lee Jiwon", State: "APPROVED"},
			{Name: "Park Juho", State: "PENDING"},
		},
	})
	require.Len(t, msg.Attachments, 1)
	require.Len(t, msg.Attachments[0].Fields, 1)
	assert.Equal(t, "Lee Jiwon (approved), Park Juho (pending)", msg.Attachments[0].Fields[0].Value)
}

func TestDigestWithoutReviewers(t *testing.T) {
	msg := Digest(DigestData{Channel: "#general", PRTitle: "t", PRURL: "u", Author: "a"})
	require.Len(t, msg.Attachments, 1)
	assert.Equal(t, "no reviewers assigned", msg.Attachments[0].Fields[0].Value)
}

func TestPageCommentMentionsEveryTarget(t *testing.T) {
	msg := PageComment(PageCommentData{
		Channel:    "#team-backend",
		MentionIDs: []string{"U100", "U200"},
		Commenter:  "Lee Jiwon",
		PRTitle:    "Fix alarm dedupe",
		PRURL:      "https://github.com/aitrics/vc/pull/9",
	})
	assert.True(t, strings.HasPrefix(msg.Text, "<@U100> <@U200>,"), "text was %q", msg.Text)
}

func TestApprovalMentionsAuthor(t *testing.T) {
	msg := Approval(ReviewData{
		Channel:   "#team-backend",
		MentionID: "U100",
		Reviewer:  "Lee Jiwon",
		PRTitle:   "Fix alarm dedupe",
		PRURL:     "https://github.com/aitrics/vc/pull/9",
	})
	assert.Contains(t, msg.Text, "<@U100>")
	assert.Contains(t, msg.Text, "approved")
	require.Len(t, msg.Attachments, 1)
	assert.Equal(t, "good", msg.Attachments[0].Color)
}
