package queue

// 主题命名规范：tv.<域>.<动作>，发布后保持稳定.
const (
	// TopicReleaseCreated 发行入库事务提交后发布.
	TopicReleaseCreated = "tv.release.created"
	// TopicBlobSwept 孤儿种子文件被清理后发布.
	TopicBlobSwept = "tv.blob.swept"
)

// Topics 所有主题，供 mq tail 等命令枚举.
var Topics = []string{TopicReleaseCreated, TopicBlobSwept}
