package mappers

import (
	"github.com/lessonlab/code-runner/internal/repository/dto"
	"github.com/lessonlab/code-runner/internal/repository/models"
)

func TaskToExecutionRequest(task *models.TaskRequest) *dto.ExecutionRequest {
	req := &dto.ExecutionRequest{
		Language:  task.Language,
		Code:      task.Code,
		TestCases: make([]dto.TestCase, 0, len(task.TestCases)),
	}
	for _, tc := range task.TestCases {
		req.TestCases = append(req.TestCases, dto.TestCase{
			Description:    tc.Description,
			Assertion:      tc.Assertion,
			ExpectedOutput: tc.ExpectedOutput,
		})
	}
	return req
}

func OutcomeToTaskResponse(task *models.TaskRequest, outcome *dto.ExecutionOutcome) *models.TaskResponse {
	resp := &models.TaskResponse{
		Id:      task.Id,
		Output:  outcome.Output,
		Success: outcome.Success,
		Error:   outcome.Error,
	}
	for _, tr := range outcome.TestResults {
		resp.TestResults = append(resp.TestResults, models.TaskTestResult{
			Description: tr.Description,
			Passed:      tr.Passed,
			Output:      tr.Output,
			Error:       tr.Error,
		})
	}
	return resp
}
