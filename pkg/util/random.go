package util

import (
	"math/rand"
)

const lowerAlnum = "abcdefghijklmnopqrstuvwxyz0123456789"

// GetRandomString 生成指定长度的随机字符串
func GetRandomString(length int) string {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	return randomFrom(charset, length)
}

// GetRandomLowerString 生成指定长度的小写字母与数字随机串，用于文件名
func GetRandomLowerString(length int) string {
	return randomFrom(lowerAlnum, length)
}

func randomFrom(charset string, length int) string {
	if length <= 0 {
		return ""
	}
	b := make([]byte, length)
	for i := range b {
		// 全局 rand 已自动播种且并发安全
		b[i] = charset[rand.Intn(len(charset))]
	}
	return string(b)
}
