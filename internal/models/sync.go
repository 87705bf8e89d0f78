package models

import "time"

type DataType string

const (
	DataUser        DataType = "USER"
	DataProfession  DataType = "PROFESSION"
	DataProduct     DataType = "PRODUCT"
	DataTransaction DataType = "TRANSACTION"
	DataCommand     DataType = "COMMAND"
	DataActivity    DataType = "ACTIVITY"
	DataArchive     DataType = "ARCHIVE"
	DataClient      DataType = "CLIENT"
)

type SyncAction string

const (
	SyncCreate SyncAction = "create"
	SyncUpdate SyncAction = "update"
	SyncDelete SyncAction = "delete"
)

// SyncEntry is the outbox: one row per local mutation not yet confirmed by
// the remote authority, enqueued in the same transaction as the mutation and
// drained FIFO per entreprise by the sync runner.
type SyncEntry struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	ClientID     string     `json:"clientId" gorm:"column:client_id;unique;not null"` // idempotency key sent with every push
	DataType     DataType   `json:"dataType" gorm:"not null"`
	Data         string     `json:"data" gorm:"not null"` // serialized entity payload
	IDEntreprise *uint      `json:"idEntreprise" gorm:"column:id_entreprise"`
	Action       SyncAction `json:"action" gorm:"not null"`
	CreatedAt    time.Time  `json:"createdAt"`
}

func (SyncEntry) TableName() string { return "sync_entries" }

type SyncDirection string

const (
	SyncPull SyncDirection = "PULL"
	SyncPush SyncDirection = "PUSH"
)

// SyncHistory records one row per completed sync round-trip.
type SyncHistory struct {
	ID       uint          `json:"id" gorm:"primaryKey"`
	Type     SyncDirection `json:"synctype" gorm:"column:sync_type;not null"`
	DateSync time.Time     `json:"dateSync" gorm:"not null"`
}

func (SyncHistory) TableName() string { return "sync_history" }
