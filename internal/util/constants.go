package util

const DateFormat = "2006-01-02"

const (
	StorageLocal = "local"
	StorageMinio = "minio"
)

// 文件上传相关常量
const (
	MimeVideo = "video/"
	MimeImage = "image/"
	MimePDF   = "application/pdf"
)
