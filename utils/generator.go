package utils

import (
	"math/rand"
	"time"

	"github.com/anjiri1684/car_rental/models"
	"gorm.io/gorm"
)

const transactionRefLength = 12
const letterBytes = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateTransactionRef produces a reference for a UPI QR transaction that is
// unique within the table it will be stored in.
func GenerateTransactionRef(tx *gorm.DB) (string, error) {
	seededRand := rand.New(rand.NewSource(time.Now().UnixNano()))

	for {
		b := make([]byte, transactionRefLength)
		for i := range b {
			b[i] = letterBytes[seededRand.Intn(len(letterBytes))]
		}
		ref := "UPI-" + string(b)

		var txn models.UpiQrTransaction
		err := tx.Where("transaction_ref = ?", ref).First(&txn).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return ref, nil
			}
			return "", err
		}
	}
}
