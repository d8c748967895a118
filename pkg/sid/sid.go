package sid

import (
	"errors"

	"github.com/sony/sonyflake"
)

type Sid struct {
	sf *sonyflake.Sonyflake
}

func NewSid() *Sid {
	sf := sonyflake.NewSonyflake(sonyflake.Settings{})
	if sf == nil {
		panic("sonyflake not created")
	}
	return &Sid{sf}
}

func (s Sid) GenUint64() (uint64, error) {
	return s.sf.NextID()
}

func (s Sid) GenInt64() (int64, error) {
	id, err := s.sf.NextID()
	if err != nil {
		return 0, err
	}
	if id > 1<<62 {
		return 0, errors.New("id overflows int64")
	}
	return int64(id), nil
}
