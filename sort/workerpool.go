package sort

// Pool 고정 크기 워커 풀.
// * 채널을 통한 세마포 구현. 슬롯 획득은 절대 블로킹하지 않는다:
// 슬롯이 없으면 호출자가 그 자리에서 직접 실행한다 (중첩 제출 시 교착 방지).
type Pool struct {
	slots chan struct{}
}

// NewPool size 개 슬롯을 가진 풀 생성
func NewPool(size int) *Pool {
	return &Pool{slots: make(chan struct{}, size)}
}

// TryAcquire 슬롯 획득 시도. 성공하면 반드시 Release 해야 함.
func (p *Pool) TryAcquire() bool {
	select {
	case p.slots <- struct{}{}:
		return true
	default:
		return false
	}
}

// Release 획득한 슬롯 반환
func (p *Pool) Release() {
	<-p.slots
}

// Status 사용 중인 슬롯 수와 전체 용량 (디버깅용)
func (p *Pool) Status() (used int, capacity int) {
	return len(p.slots), cap(p.slots)
}
