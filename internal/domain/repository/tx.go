package repository

import (
	"database/sql"

	"gorm.io/gorm"
)

// TxRunner выполняет функцию в транзакции. *gorm.DB удовлетворяет интерфейсу.
type TxRunner interface {
	Transaction(fc func(tx *gorm.DB) error, opts ...*sql.TxOptions) error
}
