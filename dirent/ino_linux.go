package dirent

//#include <dirent.h>
import "C"

func entryIno(ent *C.struct_dirent) uint64 { return uint64(ent.d_ino) }
