package v1

import "time"

type SyncBatchData struct {
	Id           int64     `json:"id,string"` // sonyflake ID，字符串化避免前端精度丢失
	Trigger      string    `json:"trigger"`
	Status       string    `json:"status"`
	SnapshotHash string    `json:"snapshotHash"`
	Created      int       `json:"created"`
	Updated      int       `json:"updated"`
	Deleted      int       `json:"deleted"`
	Warnings     int       `json:"warnings"`
	StartTime    time.Time `json:"startTime"`
	EndTime      time.Time `json:"endTime"`
}

type RunSyncResponse struct {
	Response
	Data SyncBatchData
}

type GetSyncBatchResponse struct {
	Response
	Data SyncBatchData
}

type ListSyncBatchesRequest struct {
	Page     int `form:"page" example:"1"`
	PageSize int `form:"pageSize" example:"20"`
}

type ListSyncBatchesResponseData struct {
	List  []SyncBatchData `json:"list"`
	Total int64           `json:"total"`
}

type ListSyncBatchesResponse struct {
	Response
	Data ListSyncBatchesResponseData
}
