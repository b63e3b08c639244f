package handler

import (
	"errors"
	"net/http"
	"testing"

	"github.com/forgo/questboard/api/internal/model"
	"github.com/forgo/questboard/api/internal/service"
)

func TestMapServiceError_StatusCodes(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   model.ErrorCode
	}{
		{"not quest creator", service.ErrNotQuestCreator, http.StatusForbidden, model.ErrCodeForbidden},
		{"not quest receiver", service.ErrNotQuestReceiver, http.StatusForbidden, model.ErrCodeForbidden},
		{"accept own quest", service.ErrCannotAcceptOwnQuest, http.StatusForbidden, model.ErrCodeForbidden},
		{"not friendship receiver", service.ErrNotFriendshipReceiver, http.StatusForbidden, model.ErrCodeForbidden},
		{"hero not found", service.ErrHeroNotFound, http.StatusNotFound, model.ErrCodeNotFound},
		{"quest not found", service.ErrQuestNotFound, http.StatusNotFound, model.ErrCodeNotFound},
		{"quest not open", service.ErrQuestNotOpen, http.StatusConflict, model.ErrCodeConflict},
		{"quest not in progress", service.ErrQuestNotInProgress, http.StatusConflict, model.ErrCodeConflict},
		{"friendship exists", service.ErrFriendshipExists, http.StatusConflict, model.ErrCodeConflict},
		{"friendship resolved", service.ErrFriendshipResolved, http.StatusConflict, model.ErrCodeConflict},
		{"title required", service.ErrQuestTitleRequired, http.StatusUnprocessableEntity, model.ErrCodeValidation},
		{"befriend self", service.ErrCannotBefriendSelf, http.StatusUnprocessableEntity, model.ErrCodeValidation},
		{"reward commit failed", service.ErrRewardCommitFailed, http.StatusInternalServerError, model.ErrCodeTransaction},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError, model.ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pd := MapServiceError(tt.err)
			if pd == nil {
				t.Fatal("expected a problem details response")
			}
			if pd.Status != tt.wantStatus {
				t.Errorf("status = %d, want %d", pd.Status, tt.wantStatus)
			}
			if pd.Code != tt.wantCode {
				t.Errorf("code = %d, want %d", pd.Code, tt.wantCode)
			}
		})
	}
}

func TestMapServiceError_Nil(t *testing.T) {
	if pd := MapServiceError(nil); pd != nil {
		t.Errorf("expected nil for nil error, got %+v", pd)
	}
}
