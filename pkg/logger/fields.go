package logger

// 统一的日志字段命名常量
// 用于确保整个项目中日志字段命名的一致性，便于日志查询和分析
const (
	// FieldTraceID 追踪 ID 字段
	FieldTraceID = "traceId"

	// FieldOwner 条目所有者字段
	FieldOwner = "owner"

	// FieldItemID 条目 ID 字段
	FieldItemID = "itemId"

	// FieldItemType 条目类型字段
	FieldItemType = "itemType"

	// FieldMethod 方法名称字段
	FieldMethod = "method"

	// FieldDuration 耗时字段
	FieldDuration = "duration"

	// FieldSize 文件大小字段
	FieldSize = "size"

	// FieldStorage 存储后端字段
	FieldStorage = "storage"

	// FieldBucket 存储桶名称字段
	FieldBucket = "bucket"

	// FieldFileKey 文件键字段
	FieldFileKey = "fileKey"

	// FieldURL 对象访问地址字段
	FieldURL = "url"
)
