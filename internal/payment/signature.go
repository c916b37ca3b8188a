package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// SignPayload は "order_id|payment_id" のHMAC-SHA256（hex）を作る。
func SignPayload(secret string, gatewayOrderID string, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(gatewayOrderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature は提示された署名を検証する。
// 比較はhmac.Equal（タイミング攻撃対策）。
func VerifySignature(secret string, gatewayOrderID string, paymentID string, signature string) bool {
	expected := SignPayload(secret, gatewayOrderID, paymentID)
	return hmac.Equal([]byte(expected), []byte(signature))
}
