package api

const (
	ErrInternalErr      = "INTERNAL_ERROR"
	ErrBadRequest       = "BAD_REQUEST"
	ErrCodeUnauthorized = "UNAUTHORIZED"
)

type UsersResponse struct {
	Users   []UserSchema `json:"users"`
	Total   int          `json:"total"`
	Limit   int          `json:"limit"`
	Offset  int          `json:"offset"`
	HasMore bool         `json:"has_more"`
}

type ChecksResponse struct {
	TotalUsers        int64 `json:"total_users"`
	TotalRepoRecords  int64 `json:"total_repo_records"`
	UniqueOwners      int64 `json:"unique_owners"`
	NullUserIDRecords int64 `json:"null_user_id_records"`
}

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func Error(code string, msg string) ErrorResponse {
	return ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: msg,
		},
	}
}

func InternalError() ErrorResponse {
	return ErrorResponse{
		Error: ErrorDetail{
			Code:    ErrInternalErr,
			Message: "internal server error",
		},
	}
}
